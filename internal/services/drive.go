package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"izaanhr/cv-intake-bot/internal/config"
)

// DriveService mirrors local artifacts (the ledger workbook, raw CVs) to
// Google Drive. Mirroring is best-effort: callers log failures and move on,
// the local ledger write has already succeeded by then.
type DriveService interface {
	UploadOrUpdate(ctx context.Context, localPath, title string) error
}

type driveService struct {
	service  *drive.Service
	folderID string
}

func NewDriveService(ctx context.Context, cfg config.DriveConfig) (DriveService, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(b, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	client, err := getClient(ctx, oauthConfig, cfg.TokenFile)
	if err != nil {
		return nil, err
	}

	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Drive client: %w", err)
	}

	return &driveService{
		service:  srv,
		folderID: cfg.FolderID,
	}, nil
}

// getClient builds an authenticated HTTP client from a cached token, falling
// back to the interactive console flow when no token exists yet.
func getClient(ctx context.Context, oauthConfig *oauth2.Config, tokenFile string) (*http.Client, error) {
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = getTokenFromWeb(ctx, oauthConfig)
		if err != nil {
			return nil, err
		}
		saveToken(tokenFile, tok)
	}
	return oauthConfig.Client(ctx, tok), nil
}

func getTokenFromWeb(ctx context.Context, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		log.Printf("⚠️  Unable to cache oauth token: %v\n", err)
		return
	}
	defer f.Close()
	json.NewEncoder(f).Encode(token)
}

// UploadOrUpdate implements DriveService. An existing file with the same
// title is updated in place so the ledger keeps a single Drive copy; anything
// else is created fresh under the configured folder.
func (d *driveService) UploadOrUpdate(ctx context.Context, localPath, title string) error {
	if title == "" {
		title = filepath.Base(localPath)
	}

	query := fmt.Sprintf("name='%s' and trashed=false", title)
	if d.folderID != "" {
		query += fmt.Sprintf(" and '%s' in parents", d.folderID)
	}

	list, err := d.service.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to query Drive for %s: %w", title, err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s for upload: %w", localPath, err)
	}
	defer f.Close()

	if len(list.Files) > 0 {
		_, err = d.service.Files.Update(list.Files[0].Id, &drive.File{}).
			Media(f).
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to update %s on Drive: %w", title, err)
		}
		return nil
	}

	meta := &drive.File{Name: title}
	if d.folderID != "" {
		meta.Parents = []string{d.folderID}
	}

	_, err = d.service.Files.Create(meta).
		Media(f).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to upload %s to Drive: %w", title, err)
	}

	return nil
}
