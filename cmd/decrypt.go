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

func cmdDecrypt() *cli.Command {
	selfFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "map",
			Required: true,
			Usage:    "path of the DataMap file",
		},
		&cli.StringFlag{
			Name:     "out",
			Required: true,
			Usage:    "path to write the reconstructed content to",
		},
		&cli.Uint64Flag{
			Name:  "offset",
			Usage: "start of the range to reconstruct",
		},
		&cli.Uint64Flag{
			Name:  "length",
			Usage: "length of the range to reconstruct (0 = to the end)",
		},
	}

	return &cli.Command{
		Name:      "decrypt",
		Action:    decrypt,
		Usage:     "Reconstruct content from a DataMap and its chunk backend",
		ArgsUsage: " ",
		Flags:     expandFlags(selfFlags, backendFlags()),
	}
}

func decrypt(c *cli.Context) error {
	ctx := context.Background()

	dm, err := selfenc.LoadDataMap(c.String("map"))
	if err != nil {
		return err
	}

	storage, err := newStorage(ctx, c)
	if err != nil {
		return err
	}

	reader, err := selfenc.NewSelfEncryptor(storage, dm)
	if err != nil {
		return err
	}

	offset := c.Uint64("offset")
	length := c.Uint64("length")
	if length == 0 {
		length = reader.Len()
	}
	data, err := reader.Read(ctx, offset, length)
	if err != nil {
		return fmt.Errorf("failed to reconstruct: %w", err)
	}

	out, err := os.OpenFile(c.String("out"), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	defer out.Close()

	if _, err := internal.WriteAll(out, data); err != nil {
		return err
	}
	logger.Infof("reconstructed %s to %s", internal.FormatBytes(uint64(len(data))), c.String("out"))
	return nil
}
