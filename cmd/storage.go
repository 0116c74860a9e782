// Copyright 2025 zhengshuai.xiao@outlook.com
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
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/zhengshuai-xiao/SelfEncS/internal"
	"github.com/zhengshuai-xiao/SelfEncS/selfenc"
)

// newStorage builds the chunk storage backend selected by the CLI flags.
// S3 credentials come from the MINIO_ROOT_USER/MINIO_ROOT_PASSWORD
// environment variables.
func newStorage(ctx context.Context, c *cli.Context) (selfenc.Storage, error) {
	backend := c.String("backend")
	if !internal.StringContains([]string{"posix", "s3", "redis"}, backend) {
		return nil, fmt.Errorf("unknown backend %q (want posix/s3/redis)", backend)
	}
	switch backend {
	case "posix":
		return selfenc.NewPOSIXStorage(c.String("chunk-dir"))
	case "s3":
		accessKey := os.Getenv("MINIO_ROOT_USER")
		secretKey := os.Getenv("MINIO_ROOT_PASSWORD")
		if accessKey == "" || secretKey == "" {
			return nil, fmt.Errorf("S3 backend needs MINIO_ROOT_USER and MINIO_ROOT_PASSWORD set")
		}
		return selfenc.NewS3Storage(ctx, c.String("s3-endpoint"), accessKey, secretKey, c.String("s3-bucket"), c.Bool("s3-ssl"))
	default: // redis
		return selfenc.NewRedisStorage(ctx, c.String("redis-addr"))
	}
}
