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

// Package lookup serves an interval index over gRPC.  Clients insert int64
// ranges labelled with string values and ask which ranges contain a point.
package lookup

import (
	"context"
	"errors"
	"sync"

	"github.com/9rum/rangeindex/internal/interval"
	"github.com/golang/glog"
	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// lookupServer implements the server API for Lookup service.  The index
// itself is not safe for concurrent use, so every call goes through mu.
type lookupServer struct {
	UnimplementedLookupServer
	mu    sync.RWMutex
	index *interval.Index[int64, string]
}

// NewLookupServer creates a new lookup server backed by an empty index with
// room for capacity ranges.
func NewLookupServer(capacity int, opts ...interval.Option) LookupServer {
	return &lookupServer{
		index: interval.New[int64, string](capacity, opts...),
	}
}

// Insert stores the given range and value.
func (s *lookupServer) Insert(ctx context.Context, in *structpb.Struct) (*empty.Empty, error) {
	r, value, err := parseInsertRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	glog.V(1).Infof("Insert called with range: %v value: %s", r, value)

	s.mu.Lock()
	err = s.index.Insert(r, value)
	s.mu.Unlock()

	switch {
	case errors.Is(err, interval.ErrInvalidRange):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, interval.ErrCapacity):
		glog.Warningf("rejected range %v: %v", r, err)
		return nil, status.Error(codes.ResourceExhausted, err.Error())
	case err != nil:
		return nil, status.Error(codes.Internal, err.Error())
	}
	return new(empty.Empty), nil
}

// QueryPoint returns the value of a range containing the given point.
func (s *lookupServer) QueryPoint(ctx context.Context, in *wrapperspb.Int64Value) (*wrapperspb.StringValue, error) {
	s.mu.RLock()
	value, ok := s.index.QueryPoint(in.GetValue())
	s.mu.RUnlock()

	if !ok {
		return nil, status.Errorf(codes.NotFound, "no range contains %d", in.GetValue())
	}
	return wrapperspb.String(value), nil
}

// QueryAll returns the values of all ranges containing the given point.
func (s *lookupServer) QueryAll(ctx context.Context, in *wrapperspb.Int64Value) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)

	s.mu.RLock()
	s.index.VisitAll(in.GetValue(), func(_ interval.Range[int64], value string) bool {
		out.Values = append(out.Values, structpb.NewStringValue(value))
		return true
	})
	s.mu.RUnlock()

	return out, nil
}

// Stats describes the size and shape of the index.
func (s *lookupServer) Stats(ctx context.Context, in *empty.Empty) (*structpb.Struct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"len":      structpb.NewNumberValue(float64(s.index.Len())),
			"capacity": structpb.NewNumberValue(float64(s.index.Cap())),
			"height":   structpb.NewNumberValue(float64(s.index.Height())),
		},
	}, nil
}
