// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag implements the aggregated, non-fatal-vs-fatal diagnostics
// model shared by the resolver and the driver: a slice-of-errors type for
// accumulating diagnostics that do not abort a pass, alongside plain
// wrapped errors for cases that do.
package diag

// Errors is a slice of error that itself implements error, joining the
// non-nil members with ", ". It is used for diagnostics that are
// reported but do not abort resolution, such as redefinitions collected
// during the collect-def pass.
type Errors []error

// Error implements the error interface.
func (e Errors) Error() string {
	var out string
	for i, err := range e {
		if err == nil {
			continue
		}
		if i != 0 && out != "" {
			out += ", "
		}
		out += err.Error()
	}
	return out
}

// Append appends err to e if it is non-nil and returns the result.
func Append(e Errors, err error) Errors {
	if err == nil {
		return e
	}
	return append(e, err)
}

// ErrOrNil returns e as an error, or nil if e has no elements.
func (e Errors) ErrOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
