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

package parallel

import (
	"io"
	"time"

	"github.com/juju/ratelimit"
)

// DownloadLimiter throttles dataset downloads in bytes per second.
var DownloadLimiter RateLimiter = &Unlimited{}

func InitDownloadLimiter(bytesPerSecond int64) {
	if bytesPerSecond > 0 {
		DownloadLimiter = ratelimit.NewBucketWithRate(float64(bytesPerSecond), bytesPerSecond)
	} else {
		DownloadLimiter = &Unlimited{}
	}
}

type RateLimiter interface {
	Take(count int64) time.Duration
	Wait(count int64)
}

type Unlimited struct{}

func (n *Unlimited) Take(count int64) time.Duration {
	return 0
}

func (n *Unlimited) Wait(count int64) {}

type limitedReader struct {
	r       io.Reader
	limiter RateLimiter
}

// Reader returns a reader that waits on limiter for every byte read.
func Reader(r io.Reader, limiter RateLimiter) io.Reader {
	if _, ok := limiter.(*Unlimited); ok {
		return r
	}
	return &limitedReader{r: r, limiter: limiter}
}

func (r *limitedReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.limiter.Wait(int64(n))
	}
	return n, err
}
