// Copyright 2022 Sogang University
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

package lookup

import (
	"fmt"
	"strconv"

	"github.com/9rum/rangeindex/internal/interval"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names of an insert request.  Bounds are decimal strings, as in the
// proto3 JSON mapping of int64, since a Struct number is a double.
const (
	infField   = "inf"
	supField   = "sup"
	valueField = "value"
)

// newInsertRequest encodes the given range and value as an insert request.
func newInsertRequest(inf, sup int64, value string) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			infField:   structpb.NewStringValue(strconv.FormatInt(inf, 10)),
			supField:   structpb.NewStringValue(strconv.FormatInt(sup, 10)),
			valueField: structpb.NewStringValue(value),
		},
	}
}

// parseInsertRequest decodes an insert request.
func parseInsertRequest(in *structpb.Struct) (r interval.Range[int64], value string, err error) {
	fields := in.GetFields()
	str := func(name string) (string, error) {
		v, ok := fields[name]
		if !ok {
			return "", fmt.Errorf("missing field %q", name)
		}
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return "", fmt.Errorf("field %q is not a string", name)
		}
		return s.StringValue, nil
	}
	bound := func(name string) (int64, error) {
		s, err := str(name)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", name, err)
		}
		return n, nil
	}

	if r.Inf, err = bound(infField); err != nil {
		return
	}
	if r.Sup, err = bound(supField); err != nil {
		return
	}
	value, err = str(valueField)
	return
}
