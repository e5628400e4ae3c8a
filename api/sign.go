package api

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

// Sign computes the Api-Sign header value: base64 of the hex encoded
// HMAC-SHA512 over path, body and nonce separated by NUL bytes.
func Sign(secretKey, path, body, nonce string) string {
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write([]byte(path + "\x00" + body + "\x00" + nonce))
	digest := hex.EncodeToString(mac.Sum(nil))
	return base64.StdEncoding.EncodeToString([]byte(digest))
}

// nonceSource hands out millisecond nonces that never repeat and never go
// backwards, even when two requests are signed in the same millisecond.
type nonceSource struct {
	last atomic.Int64
	now  func() time.Time
}

func (n *nonceSource) next() string {
	now := n.now
	if now == nil {
		now = time.Now
	}
	ms := now().UnixMilli()
	for {
		last := n.last.Load()
		v := ms
		if v <= last {
			v = last + 1
		}
		if n.last.CompareAndSwap(last, v) {
			return strconv.FormatInt(v, 10)
		}
	}
}
