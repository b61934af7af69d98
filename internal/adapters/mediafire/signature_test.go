package mediafire

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginSignatureIsSHA1OfConcatenation(t *testing.T) {
	t.Parallel()

	got := LoginSignature("user@example.comhunter2", "app-42", "key-secret")
	assert.Equal(t, "0bebd660769d1867217c3d370aa0669b282a341a", got)
	assert.Equal(t, got, LoginSignature("user@example.comhunter2", "app-42", "key-secret"))
}

func TestLoginSignatureChangesWithAnyInput(t *testing.T) {
	t.Parallel()

	base := LoginSignature("user@example.comhunter2", "app-42", "key-secret")
	assert.Equal(t, "cd803d264f592c4668047c19220634eb44e1c7b8", LoginSignature("user@example.comhunter3", "app-42", "key-secret"))
	assert.NotEqual(t, base, LoginSignature("user@example.comhunter2", "app-43", "key-secret"))
	assert.NotEqual(t, base, LoginSignature("user@example.comhunter2", "app-42", "key-secreT"))
}

func TestRequestSignatureUsesSecretModulo256(t *testing.T) {
	t.Parallel()

	canonical := "/api/1.5/file/get_info.php?quick_key=abc123&response_format=json&session_token=tok-1"
	assert.Equal(t, "c984a21b71eccc724e37a63e08b7b839", RequestSignature(123456789, "1521400000.5", canonical))
	// 123456789 and 21 share the same residue.
	assert.Equal(t, RequestSignature(123456789, "1521400000.5", canonical), RequestSignature(21, "1521400000.5", canonical))
	assert.NotEqual(t, RequestSignature(22, "1521400000.5", canonical), RequestSignature(21, "1521400000.5", canonical))
}

func TestCanonicalURLSortsAndIncludesSessionToken(t *testing.T) {
	t.Parallel()

	params := url.Values{}
	params.Set("response_format", "json")
	params.Set("quick_key", "abc123")

	got := CanonicalURL("https://www.mediafire.com/api/1.5/file/get_info.php", params, "tok-1", "www.mediafire.com", true)
	assert.Equal(t, "/api/1.5/file/get_info.php?quick_key=abc123&response_format=json&session_token=tok-1", got)

	absolute := CanonicalURL("https://www.mediafire.com/api/1.5/file/get_info.php", params, "tok-1", "www.mediafire.com", false)
	assert.Equal(t, "https://www.mediafire.com/api/1.5/file/get_info.php?quick_key=abc123&response_format=json&session_token=tok-1", absolute)
	assert.Equal(t, "8737cff6c534bc8cdaa9bec059c88c26", RequestSignature(123456789, "1521400000.5", absolute))
}

func TestCanonicalURLIgnoresConstructionOrder(t *testing.T) {
	t.Parallel()

	first := url.Values{}
	first.Set("filename", "photo one.png")
	first.Set("size", "1024")
	first.Set("hash", "ab")
	first.Set("response_format", "json")

	second := url.Values{}
	second.Set("response_format", "json")
	second.Set("hash", "ab")
	second.Set("size", "1024")
	second.Set("filename", "photo one.png")

	base := "https://www.mediafire.com/api/1.5/upload/instant.php"
	a := CanonicalURL(base, first, "tok", "www.mediafire.com", true)
	b := CanonicalURL(base, second, "tok", "www.mediafire.com", true)
	assert.Equal(t, a, b)
	assert.Equal(t, "/api/1.5/upload/instant.php?filename=photo+one.png&hash=ab&response_format=json&session_token=tok&size=1024", a)
	assert.Equal(t, RequestSignature(7, "1", a), RequestSignature(7, "1", b))
}

func TestCanonicalURLKeepsBaseWhenHostAbsent(t *testing.T) {
	t.Parallel()

	got := CanonicalURL("http://127.0.0.1:8080/api/1.5/file/update.php", url.Values{"a": {"1"}}, "", "www.mediafire.com", true)
	assert.Equal(t, "http://127.0.0.1:8080/api/1.5/file/update.php?a=1", got)
}
