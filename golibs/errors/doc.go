// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package errors contains the general classes of errors used across the module.
The globally defined error variables describe situations a caller may want to
distinguish, for example a configuration value that cannot be accepted
(ErrInvalid), or a broken internal invariant (ErrInternal).

The errors are expected to be wrapped with the context of the failure:

	return fmt.Errorf("capacity=%d must be positive: %w", capacity, errors.ErrInvalid)

and checked with Is().
*/
package errors
