// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package credguard

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/credentials/ssocreds"
	"github.com/aws/smithy-go"

	"github.com/tfctl/awssso/internal/log"
)

// CodeExpiredToken is the API error code AWS services return when a
// previously issued session token is presented after it has expired.
const CodeExpiredToken = "ExpiredToken"

// ErrCredentials matches every *CredentialError via errors.Is.
var ErrCredentials = errors.New("aws credentials invalid or expired")

// Kind identifies how an error was classified.
type Kind int

const (
	KindNone Kind = iota
	KindTokenRetrieval
	KindExpiredToken
	KindCanceled
	KindOpaque
	KindUnstructured
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTokenRetrieval:
		return "token_retrieval"
	case KindExpiredToken:
		return "expired_token"
	case KindCanceled:
		return "canceled"
	case KindOpaque:
		return "opaque"
	case KindUnstructured:
		return "unstructured"
	}
	return "unknown"
}

// Credential reports whether the kind is one the Normalizer converts into a
// CredentialError.
func (k Kind) Credential() bool {
	return k == KindTokenRetrieval || k == KindExpiredToken
}

// Classification is the result of inspecting an error. Code and Message are
// populated from the structured API error when one is present.
type Classification struct {
	Kind    Kind
	Code    string
	Message string
}

// Classify inspects err and reports which credential condition, if any, it
// represents. Cancellation is checked first so that a token refresh aborted
// by the caller is never reported as an expired session.
func Classify(err error) Classification {
	if err == nil {
		return Classification{Kind: KindNone}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Classification{Kind: KindCanceled, Message: err.Error()}
	}

	var tokenErr *ssocreds.InvalidTokenError
	var retrievalErr *RetrievalError
	if errors.As(err, &tokenErr) || errors.As(err, &retrievalErr) {
		return Classification{Kind: KindTokenRetrieval, Message: err.Error()}
	}

	code, msg, ok := apiErrorCode(err)
	switch {
	case !ok || code == "":
		return Classification{Kind: KindUnstructured, Message: msg}
	case code == CodeExpiredToken:
		return Classification{Kind: KindExpiredToken, Code: code, Message: msg}
	default:
		return Classification{Kind: KindOpaque, Code: code, Message: msg}
	}
}

// apiErrorCode extracts the code and message of the first smithy.APIError in
// the chain. Implementations with pointer receivers may panic when the chain
// holds a typed nil; that is reported as not ok.
func apiErrorCode(err error) (code, msg string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Debugf("api error inspection failed: type=%T, panic=%v", err, r)
			code, msg, ok = "", "", false
		}
	}()

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return "", "", false
	}
	return apiErr.ErrorCode(), apiErr.ErrorMessage(), true
}

// CredentialError reports that the credentials for a profile can no longer
// be used. The message names the command that fixes it.
type CredentialError struct {
	kind    Kind
	profile string
	msg     string
	cause   error
}

func newCredentialError(kind Kind, profile, headline string, cause error) *CredentialError {
	return &CredentialError{
		kind:    kind,
		profile: profile,
		msg:     headline + "\n" + LoginHint(profile),
		cause:   cause,
	}
}

func (e *CredentialError) Error() string { return e.msg }

// Unwrap returns the SDK error that triggered the normalization.
func (e *CredentialError) Unwrap() error { return e.cause }

// Is makes errors.Is(err, ErrCredentials) true for any CredentialError.
func (e *CredentialError) Is(target error) bool { return target == ErrCredentials }

// Kind returns KindTokenRetrieval or KindExpiredToken.
func (e *CredentialError) Kind() Kind { return e.kind }

// Profile returns the profile the operator must log in with.
func (e *CredentialError) Profile() string { return e.profile }

// LoginHint returns the remediation command line for profile.
func LoginHint(profile string) string {
	return "Please run: aws sso login --profile " + profile
}
