// Copyright 2026 The magicbuf Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package magicbuf

import (
	"errors"
	"fmt"
)

// InvalidLenError reports that a requested buffer length fails validation.
// It is only ever returned from New.
type InvalidLenError struct {
	Len         int
	Granularity int
	Reason      string
}

func (e *InvalidLenError) Error() string {
	if e.Granularity > 0 {
		return fmt.Sprintf("magicbuf: invalid length %d: %s (granularity %d)", e.Len, e.Reason, e.Granularity)
	}
	return fmt.Sprintf("magicbuf: invalid length %d: %s", e.Len, e.Reason)
}

// OOMError reports that the operating system refused to satisfy one of the
// reservation, mapping, or section steps of the platform allocator. It is
// only ever returned from New.
type OOMError struct {
	Op  string
	Err error
}

func (e *OOMError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("magicbuf: out of memory during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("magicbuf: out of memory during %s", e.Op)
}

func (e *OOMError) Unwrap() error { return e.Err }

// IsInvalidLen reports whether err is (or wraps) an *InvalidLenError.
func IsInvalidLen(err error) bool {
	var e *InvalidLenError
	return errors.As(err, &e)
}

// IsOOM reports whether err is (or wraps) an *OOMError.
func IsOOM(err error) bool {
	var e *OOMError
	return errors.As(err, &e)
}
