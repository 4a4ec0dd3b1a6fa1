// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package encoding

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidConstant = errors.New("Invalid constant")

// Decodes a hexidecimal string in the formats: 1000, x1000, 0x1000
func DecodeHex(s string) (uint32, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = s[1:]
	} else if i == 1 && s[0] == '0' {
		s = s[2:]
	} else if i != -1 {
		return 0, errors.New("Invalid hex string")
	}

	result, err := strconv.ParseUint(s, 16, 32)

	if err != nil {
		return 0, err
	}

	return uint32(result), nil
}

// Decodes a signed base-10 string in the formats: 123, -123, +123
func DecodeInt(s string) (int64, error) {
	result, err := strconv.ParseInt(s, 10, 32)

	if err != nil {
		return 0, err
	}

	return result, nil
}

// Splits a quoted constant of the form C'...' or X'...' into its kind and
// content. ok is false when s is not a well formed quoted constant.
func SplitConstant(s string) (kind byte, content string, ok bool) {
	if len(s) < 3 || s[1] != '\'' || s[len(s)-1] != '\'' {
		return 0, "", false
	}

	switch s[0] {
	case 'C', 'X':
		return s[0], s[2 : len(s)-1], true
	}

	return 0, "", false
}

// Decodes a C'...' or X'...' constant into the bytes it occupies in memory.
// Character constants yield one byte per character. Hex constants yield
// ceil(digits/2) bytes, the leading digit padded with zero when the count is
// odd.
func DecodeConstant(s string) ([]byte, error) {
	kind, content, ok := SplitConstant(s)

	if !ok || len(content) == 0 {
		return nil, ErrInvalidConstant
	}

	if kind == 'C' {
		result := make([]byte, 0, len(content))

		for i := 0; i < len(content); i++ {
			if content[i] > 0x7F {
				return nil, ErrInvalidConstant
			}

			result = append(result, content[i])
		}

		return result, nil
	}

	if len(content)%2 == 1 {
		content = "0" + content
	}

	result := make([]byte, len(content)/2)

	for i := range result {
		b, err := strconv.ParseUint(content[2*i:2*i+2], 16, 8)

		if err != nil {
			return nil, ErrInvalidConstant
		}

		result[i] = byte(b)
	}

	return result, nil
}

// Packs bytes big-endian into a single value. Only the low 32 bits survive.
func PackBigEndian(data []byte) uint32 {
	var result uint32

	for _, b := range data {
		result = (result << 8) | uint32(b)
	}

	return result
}

func Mask(value int64, bitcount uint) uint32 {
	return uint32(value) & ((1 << bitcount) - 1)
}

func FitsSigned(value int64, bitcount uint) bool {
	limit := int64(1) << (bitcount - 1)
	return value >= -limit && value < limit
}

func FitsUnsigned(value int64, bitcount uint) bool {
	return value >= 0 && value < int64(1)<<bitcount
}
