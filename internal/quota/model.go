/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package quota

import (
	"fmt"
	"strconv"
	"strings"
)

var unitSuffix = []struct {
	suffix string
	size   Size
}{
	{"EiB", SizeExa},
	{"PiB", SizePeta},
	{"TiB", SizeTera},
	{"GiB", SizeGiga},
	{"MiB", SizeMega},
	{"KiB", SizeKilo},
	{"B", SizeUnit},
}

// Parse reads a human size such as "100MiB", "512KiB" or a bare byte count
// such as "4096" and returns the corresponding Size.
func Parse(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrorSizeEmpty.Error(nil)
	}

	for _, u := range unitSuffix {
		if strings.HasSuffix(s, u.suffix) {
			num := strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, ErrorSizeInvalid.Error(err)
			}
			return Size(v * float64(u.size)), nil
		}
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrorSizeInvalid.Error(err)
	}
	return Size(v), nil
}

// String formats the size using the largest binary unit that divides it
// evenly, falling back to a plain byte count.
func (s Size) String() string {
	for _, u := range unitSuffix {
		if u.size == SizeUnit {
			continue
		}
		if s >= u.size && s%u.size == 0 {
			return fmt.Sprintf("%d%s", uint64(s)/uint64(u.size), u.suffix)
		}
	}
	return fmt.Sprintf("%dB", uint64(s))
}
