package sandbox

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hairizuanbinnoorazman/bizadmin/auth"
	"github.com/hairizuanbinnoorazman/bizadmin/client"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/hairizuanbinnoorazman/bizadmin/project"
	"github.com/hairizuanbinnoorazman/bizadmin/user"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedData is the content of a seed file.
type SeedData struct {
	Clients  []SeedClient  `yaml:"clients"`
	Users    []SeedUser    `yaml:"users"`
	Projects []SeedProject `yaml:"projects"`
}

// SeedClient is a client entry in a seed file.
type SeedClient struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// SeedUser is a user entry in a seed file. Password is plain text.
type SeedUser struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Password string `yaml:"password"`
}

// SeedProject is a project entry. Client names a client from the same file;
// ClientID is used when Client is empty.
type SeedProject struct {
	Client      string `yaml:"client"`
	ClientID    int    `yaml:"clientId"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
}

// SeedResult counts what Apply created.
type SeedResult struct {
	Clients  int
	Users    int
	Projects int
}

// LoadSeed decodes seed data. Unknown keys are rejected.
func LoadSeed(r io.Reader) (*SeedData, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data SeedData
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return &data, nil
		}
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return &data, nil
}

// LoadSeedFile decodes the seed file at path. An empty path loads the
// built-in demo data.
func LoadSeedFile(path string) (*SeedData, error) {
	if path == "" {
		return LoadSeed(bytes.NewReader(defaultSeed))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// Seeder holds the stores seed data is written to.
type Seeder struct {
	Clients  client.Store
	Users    user.Store
	Projects project.Store
	Logger   logger.Logger
}

// Apply writes clients, then users, then projects. Users whose email already
// exists are skipped so a seed can be re-run.
func (s Seeder) Apply(ctx context.Context, data *SeedData) (SeedResult, error) {
	var result SeedResult
	clientIDs := make(map[string]int, len(data.Clients))

	for _, sc := range data.Clients {
		c := &client.Client{ClientName: sc.Name, Email: sc.Email}
		if err := s.Clients.Create(ctx, c); err != nil {
			return result, fmt.Errorf("failed to seed client %q: %w", sc.Name, err)
		}
		clientIDs[strings.ToLower(sc.Name)] = c.ID
		result.Clients++
	}

	for _, su := range data.Users {
		role, err := auth.ParseRole(su.Role)
		if err != nil {
			return result, fmt.Errorf("failed to seed user %q: %w", su.Email, err)
		}
		u := &user.User{Email: su.Email, Name: su.Name, Role: role}
		if err := u.SetPassword(su.Password); err != nil {
			return result, fmt.Errorf("failed to seed user %q: %w", su.Email, err)
		}
		if err := s.Users.Create(ctx, u); err != nil {
			if errors.Is(err, user.ErrDuplicateEmail) {
				s.Logger.Info(ctx, "seed user already exists", map[string]interface{}{
					"email": su.Email,
				})
				continue
			}
			return result, fmt.Errorf("failed to seed user %q: %w", su.Email, err)
		}
		result.Users++
	}

	for _, sp := range data.Projects {
		clientID := sp.ClientID
		if sp.Client != "" {
			id, ok := clientIDs[strings.ToLower(sp.Client)]
			if !ok {
				return result, fmt.Errorf("failed to seed project %q: unknown client %q", sp.Name, sp.Client)
			}
			clientID = id
		}

		var status project.Status
		if sp.Status != "" {
			parsed, err := project.ParseStatus(sp.Status)
			if err != nil {
				return result, fmt.Errorf("failed to seed project %q: %w", sp.Name, err)
			}
			status = parsed
		}

		p := &project.Project{
			ClientID:    clientID,
			ProjectName: sp.Name,
			Description: sp.Description,
			Status:      status,
		}
		if err := s.Projects.Create(ctx, p); err != nil {
			return result, fmt.Errorf("failed to seed project %q: %w", sp.Name, err)
		}
		result.Projects++
	}

	s.Logger.Info(ctx, "seed applied", map[string]interface{}{
		"clients":  result.Clients,
		"users":    result.Users,
		"projects": result.Projects,
	})
	return result, nil
}
