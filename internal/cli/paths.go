// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ik5/audtools/audio"
)

var errNoEncoder = errors.New("no encoder for output format")

// withSuffix returns path with suffix inserted before the extension:
// "dir/take.mp3" + "_clean" is "dir/take_clean.mp3".
func withSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// checkEncoder fails when nothing can write the format of output. Commands
// call it before decoding so a long job does not die at export.
func (a *app) checkEncoder(output string) error {
	if format := audio.FormatOf(output); !a.proc.CanEncode(format) {
		return fmt.Errorf("%w %q: install ffmpeg and make sure it is in your PATH", errNoEncoder, format)
	}
	return nil
}
