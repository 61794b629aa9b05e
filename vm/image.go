// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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

package vm

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// Image encapsulates a VM's memory
type Image []Cell

// ParseError is returned by Parse when a field of the program text is not a
// valid integer.
type ParseError struct {
	Field int    // zero based index of the offending field
	Token string // field contents, whitespace removed
	Err   error  // strconv error
}

func (e *ParseError) Error() string {
	return "field " + strconv.Itoa(e.Field) + ": invalid cell value " + strconv.Quote(e.Token) + ": " + e.Err.Error()
}

// Cause returns the underlying strconv error.
func (e *ParseError) Cause() error { return e.Err }

// Parse parses a program text: comma separated base 10 integers. Whitespace,
// including newlines, is ignored anywhere in the text. An empty text yields an
// empty image. Any invalid field fails the whole parse.
func Parse(text string) (Image, error) {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if text == "" {
		return Image{}, nil
	}
	fields := strings.Split(text, ",")
	img := make(Image, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, &ParseError{i, f, err}
		}
		img[i] = Cell(v)
	}
	return img, nil
}

// Read parses the program text read from r.
func Read(r io.Reader) (Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return Parse(string(b))
}

// Load loads an image from file fileName. Files with a .zst extension are
// decompressed on the fly.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(fileName, ".zst") {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "Load")
		}
		defer zr.Close()
		r = zr
	}
	img, err := Read(r)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return img, nil
}

// Save writes the image in program text form to file fileName. Files with a
// .zst extension are compressed.
func (i Image) Save(fileName string) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	w := bufio.NewWriter(f)
	if strings.HasSuffix(fileName, ".zst") {
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return errors.Wrap(err, "save failed")
		}
		if _, err = i.WriteTo(zw); err != nil {
			zw.Close()
			return errors.Wrap(err, "save failed")
		}
		if err = zw.Close(); err != nil {
			return errors.Wrap(err, "save failed")
		}
	} else if _, err = i.WriteTo(w); err != nil {
		return errors.Wrap(err, "save failed")
	}
	return errors.Wrap(w.Flush(), "save failed")
}

// WriteTo writes the image in program text form to w.
func (i Image) WriteTo(w io.Writer) (n int64, err error) {
	var b []byte
	for k, v := range i {
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	nn, err := w.Write(b)
	return int64(nn), err
}

// String returns the image in program text form.
func (i Image) String() string {
	var sb strings.Builder
	i.WriteTo(&sb)
	return sb.String()
}

// Clone returns a copy of the image. Instances running concurrently, or that
// need to start from the same initial state, must each be given their own copy.
func (i Image) Clone() Image {
	if i == nil {
		return nil
	}
	c := make(Image, len(i))
	copy(c, i)
	return c
}
