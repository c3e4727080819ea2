package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// SessionProvider turns locally cached credentials into an authorized Gmail
// service, running the interactive consent flow only when no usable token
// exists. All browser and listener side effects live here so the rest of the
// program never touches credential plumbing.
type SessionProvider struct {
	credentialsFile string
	store           TokenStore
	logger          *zap.Logger
	openURL         func(url string) error
}

func NewSessionProvider(credentialsFile string, store TokenStore, logger *zap.Logger) *SessionProvider {
	return &SessionProvider{
		credentialsFile: credentialsFile,
		store:           store,
		logger:          logger,
		openURL:         openBrowser,
	}
}

// GetSession returns an authorized Gmail service, refreshing or re-acquiring
// the token as needed and persisting any new token through the store.
func (p *SessionProvider) GetSession(ctx context.Context) (*gmail.Service, error) {
	b, err := os.ReadFile(p.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secrets file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secrets file: %w", err)
	}

	token, err := p.store.Load()
	if err != nil {
		p.logger.Info("No cached token found, authorization required", zap.Error(err))
		token = nil
	}

	if token != nil && !token.Valid() {
		if token.RefreshToken != "" {
			refreshed, err := cfg.TokenSource(ctx, token).Token()
			if err != nil {
				p.logger.Warn("Failed to refresh token, re-authorizing", zap.Error(err))
				token = nil
			} else {
				token = refreshed
			}
		} else {
			token = nil
		}
	}

	if token == nil {
		token, err = p.authorize(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("authorization failed: %w", err)
		}
	}

	if err := p.store.Store(token); err != nil {
		p.logger.Warn("Failed to persist token", zap.Error(err))
	}

	client := cfg.Client(ctx, token)
	service, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return service, nil
}

// authorize runs the installed-app consent flow against an ephemeral
// localhost listener and exchanges the returned code for a token.
func (p *SessionProvider) authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start local callback listener: %w", err)
	}
	defer listener.Close()

	cfg.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())
	state := uuid.New().String()
	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- fmt.Errorf("authorization state mismatch")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			errCh <- fmt.Errorf("authorization response missing code")
			return
		}
		fmt.Fprintln(w, "Authorization complete. You can close this tab.")
		codeCh <- code
	})}
	go server.Serve(listener)
	defer server.Close()

	if err := p.openURL(authURL); err != nil {
		p.logger.Warn("Failed to open browser", zap.Error(err))
	}
	fmt.Printf("Please authorize this application to access your Gmail account:\n%s\n", authURL)

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
