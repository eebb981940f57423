// SPDX-License-Identifier: EPL-2.0

package audtools

import "github.com/ik5/audtools/processor"

// TrimFile cuts input between startMs and endMs (nil for the end of the
// file) and writes the result to output in the format of its extension.
// It returns the written path.
func TrimFile(input, output string, startMs int, endMs *int, opts ...processor.Option) (string, error) {
	p := processor.New(opts...)

	h, err := p.Load(input)
	if err != nil {
		return "", err
	}

	trimmed, err := p.Trim(h, startMs, endMs)
	if err != nil {
		return "", err
	}

	return p.Export(trimmed, output, "")
}
