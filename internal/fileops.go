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
package internal

import (
	"encoding/gob"
	"fmt"
	"os"
)

func SerializeToFile(data interface{}, file *os.File) (err error) {
	encoder := gob.NewEncoder(file)
	if err = encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to serialize: %w", err)
	}

	return err
}

func DeserializeFromFile(file *os.File, data interface{}) (err error) {
	decoder := gob.NewDecoder(file)
	if err = decoder.Decode(data); err != nil {
		return fmt.Errorf("failed to deserialize: %w", err)
	}

	return nil
}

func WriteAll(file *os.File, buf []byte) (int, error) {
	total := 0
	remaining := len(buf)
	for remaining > 0 {
		n, err := file.Write(buf[total:])
		if err != nil {
			return total, fmt.Errorf("failed to write file: %w", err)
		}

		total += n
		remaining -= n
	}

	return total, nil
}
