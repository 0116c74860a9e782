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
	"github.com/urfave/cli/v2"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "loglevel",
			Usage: "log level: trace/debug/info/warn/error",
			Value: "info",
		},
		&cli.StringFlag{
			Name:  "logdir",
			Usage: "write logs to a rotating file in this directory instead of stderr",
			Value: "",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored log output",
		},
	}
}

// backendFlags are shared by the commands that need a chunk storage backend.
func backendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "backend",
			Value: "posix",
			Usage: "chunk storage backend: posix/s3/redis",
		},
		&cli.StringFlag{
			Name:  "chunk-dir",
			Value: "/var/lib/selfencs/chunks",
			Usage: "chunk directory for the posix backend",
		},
		&cli.StringFlag{
			Name:  "s3-endpoint",
			Value: "127.0.0.1:9000",
			Usage: "endpoint of the S3 backend",
		},
		&cli.StringFlag{
			Name:  "s3-bucket",
			Value: "selfencs",
			Usage: "bucket on the S3 backend",
		},
		&cli.BoolFlag{
			Name:  "s3-ssl",
			Usage: "use TLS when talking to the S3 backend",
		},
		&cli.StringFlag{
			Name:  "redis-addr",
			Value: "127.0.0.1:6379/1",
			Usage: "address of the redis backend",
		},
	}
}

func expandFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}
