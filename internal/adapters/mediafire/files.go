package mediafire

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/mfimport/internal/domain"
	"github.com/bnema/mfimport/internal/ports"
)

var _ ports.FileAPI = (*Client)(nil)

const (
	pathFileInfo   = "file/get_info"
	pathInstant    = "upload/instant"
	pathFileUpdate = "file/update"
	privacyPrivate = "private"
)

type fileInfoResponse struct {
	FileInfo struct {
		QuickKey string     `json:"quickkey"`
		Filename string     `json:"filename"`
		Size     FlexString `json:"size"`
		Hash     string     `json:"hash"`
		Privacy  string     `json:"privacy"`
	} `json:"file_info"`
}

func (c *Client) GetFileInfo(ctx context.Context, quickKey string) (domain.FileInfo, error) {
	params := url.Values{}
	params.Set("quick_key", quickKey)

	env, err := c.dispatcher.Call(ctx, pathFileInfo, params)
	if err != nil {
		return domain.FileInfo{}, fmt.Errorf("get file info %s: %w", quickKey, err)
	}

	var payload fileInfoResponse
	if err := env.Decode(&payload); err != nil {
		return domain.FileInfo{}, fmt.Errorf("get file info %s: %w", quickKey, err)
	}
	info := payload.FileInfo
	size, err := strconv.ParseUint(strings.TrimSpace(info.Size.String()), 10, 64)
	if err != nil {
		return domain.FileInfo{}, fmt.Errorf("get file info %s: invalid size %q", quickKey, info.Size)
	}
	if info.QuickKey == "" {
		info.QuickKey = quickKey
	}

	return domain.FileInfo{
		QuickKey: info.QuickKey,
		Filename: info.Filename,
		Size:     size,
		Hash:     strings.ToLower(info.Hash),
		Privacy:  info.Privacy,
	}, nil
}

// InstantUpload claims a file by content hash. An empty quick key means the
// account already owns the file.
func (c *Client) InstantUpload(ctx context.Context, filename string, size uint64, sha256 string) (string, error) {
	params := url.Values{}
	params.Set("filename", filename)
	params.Set("size", strconv.FormatUint(size, 10))
	params.Set("hash", sha256)

	env, err := c.dispatcher.Call(ctx, pathInstant, params)
	if err != nil {
		return "", fmt.Errorf("instant upload %s: %w", filename, err)
	}

	var payload struct {
		QuickKey string `json:"quickkey"`
	}
	if err := env.Decode(&payload); err != nil {
		return "", fmt.Errorf("instant upload %s: %w", filename, err)
	}
	return payload.QuickKey, nil
}

func (c *Client) SetPrivate(ctx context.Context, quickKey string) error {
	params := url.Values{}
	params.Set("quick_key", quickKey)
	params.Set("privacy", privacyPrivate)

	if _, err := c.dispatcher.Call(ctx, pathFileUpdate, params); err != nil {
		return fmt.Errorf("set private %s: %w", quickKey, err)
	}
	return nil
}
