package auth

import "time"

type Strategy interface {
	IssueToken(customerID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
