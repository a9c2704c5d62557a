// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/pkg/errors"
)

func TestLRUGetOrLoadCachesSuccessfulLoad(t *testing.T) {
	c := NewLRU("test.chain", 16)

	var loads int
	loader := func(key interface{}) (interface{}, error) {
		loads++
		return key.(string) + "-value", nil
	}

	v, err := c.GetOrLoad("owner", loader)
	if err != nil {
		t.Fatalf("GetOrLoad: %v", err)
	}
	if v != "owner-value" {
		t.Errorf("v = %v, want owner-value", v)
	}

	if _, err := c.GetOrLoad("owner", loader); err != nil {
		t.Fatalf("GetOrLoad (second call): %v", err)
	}
	if loads != 1 {
		t.Errorf("loader called %d times, want 1 (second lookup should hit)", loads)
	}
}

func TestLRUGetOrLoadDoesNotCacheLoadError(t *testing.T) {
	c := NewLRU("test.chain", 16)
	wantErr := errors.New("no such block")

	loader := func(key interface{}) (interface{}, error) {
		return nil, wantErr
	}

	if _, err := c.GetOrLoad("missing", loader); err != wantErr {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}

	var secondCalled bool
	_, _ = c.GetOrLoad("missing", func(key interface{}) (interface{}, error) {
		secondCalled = true
		return "now present", nil
	})
	if !secondCalled {
		t.Error("a failed load must not be cached: expected loader to run again")
	}
}

func TestLRUEvictsUnderPressure(t *testing.T) {
	c := NewLRU("test.chain", 16)

	for i := 0; i < 64; i++ {
		key := i
		if _, err := c.GetOrLoad(key, func(key interface{}) (interface{}, error) {
			return key, nil
		}); err != nil {
			t.Fatalf("GetOrLoad(%d): %v", i, err)
		}
	}

	if c.Len() >= 64 {
		t.Errorf("cache length = %d, want eviction to have bounded it below 64", c.Len())
	}
}
