package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// Asset is one image hosted by the remote service.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Uploader pushes a single binary asset to the hosted image service.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (Asset, error)
}

// Destroyer removes a previously uploaded asset by its public id.
type Destroyer interface {
	Destroy(ctx context.Context, publicID string) error
}

// Client talks to a Cloudinary-compatible image API. Credentials are
// static configuration: every upload in the process lands in the same
// account and preset, with no per-call override.
type Client struct {
	baseURL      string
	cloudName    string
	apiKey       string
	apiSecret    string
	uploadPreset string
	http         *http.Client
}

func NewClient(baseURL, cloudName, apiKey, apiSecret, uploadPreset string) *Client {
	return &Client{
		baseURL:      baseURL,
		cloudName:    cloudName,
		apiKey:       apiKey,
		apiSecret:    apiSecret,
		uploadPreset: uploadPreset,
		http:         http.DefaultClient,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Upload sends one file and returns its public URL and identifier.
// There is no retry: a single failure propagates to the caller.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (Asset, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return Asset{}, err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return Asset{}, err
	}
	_ = mw.WriteField("upload_preset", c.uploadPreset)
	_ = mw.WriteField("api_key", c.apiKey)
	if err := mw.Close(); err != nil {
		return Asset{}, err
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return Asset{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("image upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Asset{}, fmt.Errorf("image upload: service returned %s", resp.Status)
	}

	var ur uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return Asset{}, fmt.Errorf("image upload: decode response: %w", err)
	}
	if ur.SecureURL == "" || ur.PublicID == "" {
		return Asset{}, fmt.Errorf("image upload: incomplete response")
	}
	return Asset{URL: ur.SecureURL, PublicID: ur.PublicID}, nil
}

type destroyResponse struct {
	Result string `json:"result"`
}

// Destroy issues a signed destroy call for one asset.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("public_id", publicID)
	_ = mw.WriteField("api_key", c.apiKey)
	_ = mw.WriteField("timestamp", ts)
	_ = mw.WriteField("signature", signature(publicID, ts, c.apiSecret))
	if err := mw.Close(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("image destroy: %w", err)
	}
	defer resp.Body.Close()

	var dr destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("image destroy: decode response: %w", err)
	}
	if dr.Result != "ok" {
		return fmt.Errorf("image destroy: service returned %q for %s", dr.Result, publicID)
	}
	return nil
}

// signature is the keyed hash the service expects on destroy calls:
// SHA-1 over "public_id=<id>&timestamp=<ts>" with the secret appended.
func signature(publicID, timestamp, secret string) string {
	sum := sha1.Sum([]byte("public_id=" + publicID + "&timestamp=" + timestamp + secret))
	return hex.EncodeToString(sum[:])
}
