package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Author struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type PostInput struct {
	ID      string  `json:"id,omitempty"`
	Title   string  `json:"title,omitempty"`
	Content string  `json:"content,omitempty"`
	Author  *Author `json:"author,omitempty"`
}

type Post struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Created time.Time `json:"created"`
}

type Response struct {
	Status int
	Body   []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

type BlogClient struct {
	baseURL string
	http    *http.Client
}

func NewBlogClient(baseURL string, timeout time.Duration) *BlogClient {
	return &BlogClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (b *BlogClient) do(method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, b.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading body: %w", method, path, err)
	}
	return &Response{Status: resp.StatusCode, Body: data}, nil
}

func (b *BlogClient) List() (*Response, error) {
	return b.do(http.MethodGet, "/posts", nil)
}

func (b *BlogClient) Get(id string) (*Response, error) {
	return b.do(http.MethodGet, "/posts/"+id, nil)
}

func (b *BlogClient) Create(in PostInput) (*Response, error) {
	return b.do(http.MethodPost, "/posts", in)
}

func (b *BlogClient) Update(id string, in PostInput) (*Response, error) {
	return b.do(http.MethodPut, "/posts/"+id, in)
}

func (b *BlogClient) Delete(id string) (*Response, error) {
	return b.do(http.MethodDelete, "/posts/"+id, nil)
}
