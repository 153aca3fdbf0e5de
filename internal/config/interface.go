/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package config binds the service's on-disk/environment configuration
// through viper, decodes quota.Size/perm.Perm/duration.Duration fields from
// their human-readable string forms, and validates the result with
// go-playground/validator struct tags.
package config

import (
	"github.com/nabbar/filestored/duration"
	"github.com/nabbar/filestored/file/perm"
	"github.com/nabbar/filestored/internal/quota"
)

// Model is the full configuration surface for the storage service.
type Model struct {
	ListenAddr string `mapstructure:"listen_addr" json:"listen_addr" yaml:"listen_addr" toml:"listen_addr" validate:"required,hostname_port"`

	// MetricsAddr serves Prometheus metrics at /metrics when set; left
	// blank, the service runs without a metrics endpoint.
	MetricsAddr string `mapstructure:"metrics_addr" json:"metrics_addr" yaml:"metrics_addr" toml:"metrics_addr" validate:"omitempty,hostname_port"`

	StorageDir      string    `mapstructure:"storage_dir" json:"storage_dir" yaml:"storage_dir" toml:"storage_dir" validate:"required"`
	StorageDirPerm  perm.Perm `mapstructure:"storage_dir_perm" json:"storage_dir_perm" yaml:"storage_dir_perm" toml:"storage_dir_perm" validate:""`
	StorageFilePerm perm.Perm `mapstructure:"storage_file_perm" json:"storage_file_perm" yaml:"storage_file_perm" toml:"storage_file_perm" validate:""`

	DefaultQuota quota.Size `mapstructure:"default_quota" json:"default_quota" yaml:"default_quota" toml:"default_quota" validate:""`

	ReaderPoolSize int64 `mapstructure:"reader_pool_size" json:"reader_pool_size" yaml:"reader_pool_size" toml:"reader_pool_size" validate:"gt=0"`
	WorkerPoolSize int   `mapstructure:"worker_pool_size" json:"worker_pool_size" yaml:"worker_pool_size" toml:"worker_pool_size" validate:"gt=0"`
	SenderPoolSize int   `mapstructure:"sender_pool_size" json:"sender_pool_size" yaml:"sender_pool_size" toml:"sender_pool_size" validate:"gt=0"`

	TaskQueueCapacity   int64 `mapstructure:"task_queue_capacity" json:"task_queue_capacity" yaml:"task_queue_capacity" toml:"task_queue_capacity" validate:"gt=0"`
	ResultQueueCapacity int64 `mapstructure:"result_queue_capacity" json:"result_queue_capacity" yaml:"result_queue_capacity" toml:"result_queue_capacity" validate:"gt=0"`

	ShutdownGrace duration.Duration `mapstructure:"shutdown_grace" json:"shutdown_grace" yaml:"shutdown_grace" toml:"shutdown_grace" validate:""`

	LogLevel  string `mapstructure:"log_level" json:"log_level" yaml:"log_level" toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" json:"log_format" yaml:"log_format" toml:"log_format" validate:"omitempty,oneof=text json"`
}

// Default returns the configuration the service starts from absent any
// file, environment variable or flag override.
func Default() Model {
	return Model{
		ListenAddr:          ":9000",
		MetricsAddr:         "",
		StorageDir:          "./storage",
		StorageDirPerm:      perm.ParseFileMode(0750),
		StorageFilePerm:     perm.ParseFileMode(0640),
		DefaultQuota:        quota.DefaultQuota,
		ReaderPoolSize:      8,
		WorkerPoolSize:      6,
		SenderPoolSize:      4,
		TaskQueueCapacity:   128,
		ResultQueueCapacity: 128,
		ShutdownGrace:       duration.ParseDuration(5_000_000_000), // 5s
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

// Load starts from Default, overlays the file at path (if non-empty), lets
// environment variables prefixed FILESTORED_ override the keys that file
// sets, then validates the result. Environment variables for keys the file
// does not set are not read.
func Load(path string) (Model, error) {
	return load(path)
}

// Validate runs struct-tag validation over m.
func Validate(m Model) error {
	return validate(m)
}
