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

package config

import (
	"fmt"
	"strings"

	libmap "github.com/go-viper/mapstructure/v2"
	libval "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/nabbar/filestored/duration"
	"github.com/nabbar/filestored/file/perm"
	"github.com/nabbar/filestored/internal/quota"
)

func load(path string) (Model, error) {
	m := Default()

	v := viper.New()
	v.SetEnvPrefix("FILESTORED")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Model{}, ErrorConfigRead.Error(err)
		}
	}

	if err := v.Unmarshal(&m, viper.DecodeHook(libmap.ComposeDecodeHookFunc(
		quota.ViperDecoderHook(),
		perm.ViperDecoderHook(),
		duration.ViperDecoderHook(),
	))); err != nil {
		return Model{}, ErrorConfigDecode.Error(err)
	}

	if err := validate(m); err != nil {
		return Model{}, err
	}

	return m, nil
}

func validate(m Model) error {
	err := ErrorConfigValidate.Error(nil)

	v := libval.New()
	if e := v.Struct(m); e != nil {
		if ve, ok := e.(libval.ValidationErrors); ok {
			for _, fe := range ve {
				err.Add(fmt.Errorf("config field '%s' failed constraint '%s'", fe.StructNamespace(), fe.ActualTag()))
			}
		} else {
			err.Add(e)
		}
	}

	if err.HasParent() {
		return err
	}
	return nil
}
