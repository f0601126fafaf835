package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

type storedSession struct {
	URL     string         `json:"url"`
	Cookies []storedCookie `json:"cookies"`
}

// FileJar is a cookie jar that persists the cookies set for one site to a
// file, so the CLI keeps its session between invocations.
type FileJar struct {
	mu   sync.Mutex
	path string
	site *url.URL
	jar  *cookiejar.Jar
	// cookies mirrors what the site set, since cookiejar does not expose
	// expiry or path on read.
	cookies map[string]storedCookie
}

// OpenFileJar loads the jar stored at path for the site of baseURL. A
// missing file yields an empty jar.
func OpenFileJar(path string, baseURL *url.URL) (*FileJar, error) {
	site := jarURL(&url.URL{Scheme: baseURL.Scheme, Host: baseURL.Host, Path: "/"})
	j := &FileJar{
		path:    path,
		site:    site,
		cookies: make(map[string]storedCookie),
	}
	if err := j.reset(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", path, err)
	}
	if stored.URL != site.String() {
		// Session belongs to another backend.
		return j, nil
	}

	now := time.Now()
	var cookies []*http.Cookie
	for _, sc := range stored.Cookies {
		if !sc.Expires.IsZero() && sc.Expires.Before(now) {
			continue
		}
		j.cookies[sc.Name] = sc
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value, Path: sc.Path, Expires: sc.Expires})
	}
	j.jar.SetCookies(site, cookies)
	return j, nil
}

func (j *FileJar) reset() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("failed to create cookie jar: %w", err)
	}
	j.jar = jar
	return nil
}

func (j *FileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
	if u.Host != j.site.Host {
		return
	}
	for _, c := range cookies {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(j.cookies, c.Name)
			continue
		}
		expires := c.Expires
		if c.MaxAge > 0 {
			expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		}
		j.cookies[c.Name] = storedCookie{Name: c.Name, Value: c.Value, Path: c.Path, Expires: expires}
	}
}

func (j *FileJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// Save writes the current cookies to disk with owner-only permissions.
func (j *FileJar) Save() error {
	j.mu.Lock()
	stored := storedSession{URL: j.site.String()}
	for _, c := range j.cookies {
		stored.Cookies = append(stored.Cookies, c)
	}
	j.mu.Unlock()

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(j.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear forgets every cookie and removes the session file.
func (j *FileJar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.cookies = make(map[string]storedCookie)
	if err := j.reset(); err != nil {
		return err
	}
	if err := os.Remove(j.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

var _ http.CookieJar = (*FileJar)(nil)
