// Copyright 2024 dmba Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dataset

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmba-go/dmba/base/log"
	"github.com/dmba-go/dmba/common/parallel"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// DataFile resolves a dataset name to a file in dir. Zip archives are used as
// they are, other names are normalized to <name>.csv.gz.
func DataFile(dir, name string) string {
	if strings.HasSuffix(name, ".zip") {
		return filepath.Join(dir, name)
	}
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".csv")
	return filepath.Join(dir, name+".csv.gz")
}

// LoadData loads a dataset from dir.
func LoadData(dir, name string) (*Frame, error) {
	path := DataFile(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NotFoundf("data file %s", name)
	}
	if strings.HasSuffix(path, ".zip") {
		return loadZip(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Annotatef(err, "open %s", path)
	}
	defer r.Close()
	return ReadCSV(r)
}

// loadZip reads the first CSV file in a zip archive.
func loadZip(path string) (*Frame, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer r.Close()
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".csv") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Trace(err)
		}
		defer rc.Close()
		return ReadCSV(rc)
	}
	return nil, errors.NotFoundf("CSV file in %s", path)
}

// Download fetches <baseURL>/<file> into dir unless the file exists already and
// returns the local path.
func Download(ctx context.Context, baseURL, dir, name string) (string, error) {
	path := DataFile(dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	src := fmt.Sprintf("%s/%s", strings.TrimSuffix(baseURL, "/"), filepath.Base(path))
	log.Logger().Info("download dataset", zap.String("source", src), zap.String("destination", path))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", errors.Trace(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", errors.Trace(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Logger().Error("failed to download", zap.Error(err), zap.String("source", src))
		return "", errors.Trace(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.NotFoundf("%s (%s)", src, resp.Status)
	}
	// partial downloads never reach path
	temp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return "", errors.Trace(err)
	}
	defer os.Remove(temp.Name())
	bar := progressbar.DefaultBytesSilent(resp.ContentLength, "downloading "+filepath.Base(path))
	if log.Logger().Core().Enabled(zap.InfoLevel) {
		bar = progressbar.DefaultBytes(resp.ContentLength, "downloading "+filepath.Base(path))
	}
	if _, err = io.Copy(io.MultiWriter(temp, bar), parallel.Reader(resp.Body, parallel.DownloadLimiter)); err != nil {
		_ = temp.Close()
		return "", errors.Trace(err)
	}
	if err = temp.Close(); err != nil {
		return "", errors.Trace(err)
	}
	if err = os.Rename(temp.Name(), path); err != nil {
		return "", errors.Trace(err)
	}
	return path, nil
}
