package domain

type FileInfo struct {
	QuickKey string
	Filename string
	Size     uint64
	Hash     string
	Privacy  string
}
