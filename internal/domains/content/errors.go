package content

import "errors"

// ============================================================
// SENTINEL ERRORS
// ============================================================
// Tất cả lỗi ở đây đều được recover ở top level (fail-open):
// log lại, ẩn loading overlay, page vẫn hiển thị.

var (
	ErrFetchFailed   = errors.New("content fetch failed")
	ErrMalformedJSON = errors.New("content document is not valid JSON")
	ErrMissingField  = errors.New("content document is missing a required field")
	ErrRegionMissing = errors.New("page region missing")
)
