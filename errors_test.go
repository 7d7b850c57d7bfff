package iconset

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Sentinels(t *testing.T) {
	err := &Error{Kind: EncodeFailure, Op: "encode ico", Err: fmt.Errorf("boom")}

	assert.True(t, errors.Is(err, ErrEncodeFailure))
	assert.False(t, errors.Is(err, ErrIOFailure))
	assert.Equal(t, EncodeFailure, KindOf(err))

	wrapped := fmt.Errorf("export: %w", err)
	assert.True(t, errors.Is(wrapped, ErrEncodeFailure))
	assert.Equal(t, EncodeFailure, KindOf(wrapped))

	assert.Equal(t, KindUnknown, KindOf(fmt.Errorf("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestErrors_UnwrapContext(t *testing.T) {
	native := &Error{Kind: EncodeFailure, Op: "encode icns"}
	tool := &ToolError{Tool: "iconutil", Output: "Invalid Iconset.", Err: fs.ErrPermission}
	err := &Error{Kind: ExternalToolFailure, Op: "iconutil", Path: "macos/icon.icns", Err: tool, Context: native}

	assert.True(t, errors.Is(err, ErrExternalToolFailure))
	assert.True(t, errors.Is(err, ErrEncodeFailure), "the context error is reachable")
	assert.True(t, errors.Is(err, fs.ErrPermission))

	var te *ToolError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, "Invalid Iconset.", te.Output)

	assert.Equal(t,
		`external tool failure: iconutil "macos/icon.icns": iconutil: permission denied: Invalid Iconset. (after: encode failure: encode icns)`,
		err.Error())
}

func TestErrors_Message(t *testing.T) {
	err := &Error{Kind: SourceInvalid, Op: "open source", Path: "logo.svg", Msg: "not a regular file"}
	assert.Equal(t, `invalid source: open source "logo.svg": not a regular file`, err.Error())

	assert.Equal(t, "i/o failure", IOFailure.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestErrors_Hints(t *testing.T) {
	err := &Error{Kind: BackendUnavailable, Hint: backendHint(rsvgCommand)}
	assert.Contains(t, HintOf(fmt.Errorf("wrapped: %w", err)), "librsvg")
	assert.Empty(t, HintOf(fmt.Errorf("plain")))

	assert.Contains(t, backendHint("inkscape"), string(BackendRSVG))
}
