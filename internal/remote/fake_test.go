package remote

import (
	"context"
	"net/url"
	"sync"
)

type fakeTransport struct {
	mu    sync.Mutex
	gets  []url.Values
	posts []Operation
	env   *Envelope
	err   error
}

func (f *fakeTransport) Get(_ context.Context, q url.Values) (*Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets = append(f.gets, q)
	if f.err != nil {
		return nil, f.err
	}
	if f.env == nil {
		return &Envelope{}, nil
	}
	env := *f.env
	return &env, nil
}

func (f *fakeTransport) Post(_ context.Context, op Operation) (*Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, op)
	if f.err != nil {
		return nil, f.err
	}
	if f.env == nil {
		return &Envelope{}, nil
	}
	env := *f.env
	return &env, nil
}

func (f *fakeTransport) Posts() []Operation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Operation(nil), f.posts...)
}

type memTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memTokens) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}
