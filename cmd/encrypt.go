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

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/zhengshuai-xiao/SelfEncS/internal"
	"github.com/zhengshuai-xiao/SelfEncS/selfenc"
)

func cmdEncrypt() *cli.Command {
	selfFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "in",
			Required: true,
			Usage:    "path of the file to encrypt",
		},
		&cli.StringFlag{
			Name:     "map",
			Required: true,
			Usage:    "path to write the DataMap to",
		},
		&cli.StringFlag{
			Name:  "compression",
			Value: "snappy",
			Usage: "compress chunks with the specified algorithm before sealing: snappy/zlib",
		},
	}

	return &cli.Command{
		Name:      "encrypt",
		Action:    encrypt,
		Usage:     "Encrypt a file into content-addressed chunks plus a DataMap",
		ArgsUsage: " ",
		Description: `
			Splits the input into encrypted chunks stored on the selected backend and
			writes a DataMap file from which the content can be reconstructed. Inputs
			below three times the minimum chunk size are kept inline in the DataMap
			and nothing is written to the backend.

			Examples:
			$ selfencs encrypt --in report.pdf --map report.map --backend posix --chunk-dir /tmp/chunks`,
		Flags: expandFlags(selfFlags, backendFlags()),
	}
}

func encrypt(c *cli.Context) error {
	jobID := uuid.New().String()[:8]
	internal.SetLogID(jobID + " ")
	ctx := context.Background()

	storage, err := newStorage(ctx, c)
	if err != nil {
		return err
	}

	in, err := os.Open(c.String("in"))
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	encryptor, err := selfenc.NewEncryptor(storage, nil, c.String("compression"))
	if err != nil {
		return err
	}
	written, err := encryptor.ReadFrom(in)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", c.String("in"), err)
	}
	dm, _, err := encryptor.Close(ctx)
	if err != nil {
		return err
	}

	if err := selfenc.DumpDataMap(&dm, c.String("map")); err != nil {
		return err
	}
	if dm.IsChunked() {
		logger.Infof("encrypted %s (%s) into %d chunks, DataMap at %s",
			c.String("in"), internal.FormatBytes(uint64(written)), len(dm.Chunks), c.String("map"))
	} else {
		logger.Infof("stored %s (%s) inline in DataMap %s",
			c.String("in"), internal.FormatBytes(uint64(written)), c.String("map"))
	}
	return nil
}
