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

//go:generate protoc --proto_path=proto/ --go-grpc_out=lookup/ --go-grpc_opt=paths=source_relative lookup.proto

// Package main implements the lookup server.  The server holds a single
// interval index in memory; clients fill it with ranges and query it for the
// ranges containing a point.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/9rum/rangeindex/internal/avltree"
	"github.com/9rum/rangeindex/internal/interval"
	"github.com/9rum/rangeindex/lookup"
	"github.com/golang/glog"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"google.golang.org/grpc"
)

func main() {
	port := flag.Int("p", 50051, "The server port")
	capacity := flag.Int("capacity", 1024, "The number of ranges the index holds before it grows")
	maxCapacity := flag.Int("max-capacity", avltree.DefaultMaxCapacity, "The number of ranges and tree slots the index may grow to")
	flag.Parse()

	if err := serve(*port, *capacity, *maxCapacity); err != nil {
		glog.Fatalf("failed to serve: %v", err)
	}
}

func serve(port, capacity, maxCapacity int) error {
	if capacity < 1 || maxCapacity < capacity {
		return fmt.Errorf("invalid capacity %d with maximum %d", capacity, maxCapacity)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}

	server := newServer(capacity, maxCapacity)
	glog.Infof("server listening at %v", lis.Addr())

	return server.Serve(lis)
}

func newServer(capacity, maxCapacity int) *grpc.Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_recovery.UnaryServerInterceptor(),
		),
	)
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func(done <-chan os.Signal, server *grpc.Server) {
		sig := <-done
		glog.Infof("received %v, stopping", sig)
		server.GracefulStop()
		glog.Flush()
	}(done, server)

	lookup.RegisterLookupServer(server, lookup.NewLookupServer(capacity, interval.WithMaxCapacity(maxCapacity)))

	return server
}
