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
package selfenc

import (
	"bytes"
	"context"
	"fmt"
	"io"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const s3ChunkPrefix = "chunks/"

// S3Storage keeps sealed chunks in an S3-compatible bucket.
type S3Storage struct {
	client *miniogo.Client
	bucket string
}

// NewS3Storage connects to an S3-compatible endpoint and ensures the bucket
// exists.
func NewS3Storage(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*S3Storage, error) {
	client, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client for %s: %w", endpoint, err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, miniogo.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		logger.Infof("created bucket %s on %s", bucket, endpoint)
	}
	return &S3Storage{client: client, bucket: bucket}, nil
}

func (s *S3Storage) Put(ctx context.Context, name string, data []byte) error {
	opts := miniogo.PutObjectOptions{ContentType: "application/octet-stream"}
	_, err := s.client.PutObject(ctx, s.bucket, s3ChunkPrefix+name, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return fmt.Errorf("failed to put chunk %s: %w", name, err)
	}
	return nil
}

func (s *S3Storage) Get(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s3ChunkPrefix+name, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get chunk %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if miniogo.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrChunkNotFound
		}
		return nil, fmt.Errorf("failed to read chunk %s: %w", name, err)
	}
	return data, nil
}

func (s *S3Storage) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s3ChunkPrefix+name, miniogo.RemoveObjectOptions{})
	if err != nil && miniogo.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("failed to delete chunk %s: %w", name, err)
	}
	return nil
}
