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
	"context"

	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client wraps LookupClient with plain Go types.
type Client struct {
	c LookupClient
}

// Stats describes the index behind a lookup server.
type Stats struct {
	Len      int
	Capacity int
	Height   int
}

// NewClient creates a new client on the given connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{c: NewLookupClient(cc)}
}

// Insert stores the range [inf, sup] with the given value.
func (c *Client) Insert(ctx context.Context, inf, sup int64, value string) error {
	_, err := c.c.Insert(ctx, newInsertRequest(inf, sup, value))
	return err
}

// QueryPoint returns the value of a range containing k.  A miss is reported
// through ok, not as an error.
func (c *Client) QueryPoint(ctx context.Context, k int64) (value string, ok bool, err error) {
	out, err := c.c.QueryPoint(ctx, wrapperspb.Int64(k))
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return out.GetValue(), true, nil
}

// QueryAll returns the values of all ranges containing k.
func (c *Client) QueryAll(ctx context.Context, k int64) ([]string, error) {
	out, err := c.c.QueryAll(ctx, wrapperspb.Int64(k))
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(out.GetValues()))
	for _, v := range out.GetValues() {
		values = append(values, v.GetStringValue())
	}
	return values, nil
}

// Stats returns the size and shape of the index.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	out, err := c.c.Stats(ctx, new(empty.Empty))
	if err != nil {
		return Stats{}, err
	}
	fields := out.GetFields()
	return Stats{
		Len:      int(fields["len"].GetNumberValue()),
		Capacity: int(fields["capacity"].GetNumberValue()),
		Height:   int(fields["height"].GetNumberValue()),
	}, nil
}
