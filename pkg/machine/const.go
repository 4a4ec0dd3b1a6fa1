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

package machine

const (
	RECORD_HEADER = 'H'
	RECORD_TEXT   = 'T'
	RECORD_END    = 'E'
)

const (
	HEADER_LEN = 19
	TEXT_MIN   = 9
	END_LEN    = 7

	// Object bytes a single text record may carry.
	TEXT_MAX = 30
)

// Bytes shown per line of a memory dump.
const DUMP_WIDTH = 16
