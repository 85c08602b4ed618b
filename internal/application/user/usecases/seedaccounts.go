package usecases

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fixora-app/fixora/internal/domain/user"
	vo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// SeedFile lists the warden and staff accounts to create. Students sign
// up themselves.
//
//	wardens:
//	  - email: warden.boys@fixora.app
//	    name: Boys Warden
//	    wing: male
//	    password: changeme
//	staff:
//	  - email: electrician@fixora.app
//	    name: Electrician
//	    department: Electrical
//	    wing: male
//	    password: changeme
type SeedFile struct {
	Wardens []SeedAccount `yaml:"wardens"`
	Staff   []SeedAccount `yaml:"staff"`
}

type SeedAccount struct {
	Email      string `yaml:"email"`
	Name       string `yaml:"name"`
	Password   string `yaml:"password"`
	Wing       string `yaml:"wing"`
	Department string `yaml:"department,omitempty"`
}

// ParseSeedFile decodes a seed file and rejects unknown keys.
func ParseSeedFile(r io.Reader) (*SeedFile, error) {
	var file SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return &file, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &file, nil
}

type SeedResult struct {
	Created []string
	Skipped []string
}

type SeedAccountsUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	logger         logger.Interface
}

func NewSeedAccountsUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *SeedAccountsUseCase {
	return &SeedAccountsUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		logger:         logger,
	}
}

// Execute creates every account whose email is not registered yet. It is
// safe to run repeatedly. The first invalid entry aborts the run.
func (uc *SeedAccountsUseCase) Execute(ctx context.Context, file *SeedFile) (*SeedResult, error) {
	uc.logger.Infow("executing seed accounts use case", "wardens", len(file.Wardens), "staff", len(file.Staff))

	result := &SeedResult{}
	for i, a := range file.Wardens {
		if err := uc.seed(ctx, a, result, func(email *vo.Email, wing vo.Wing, hash string) (*user.User, error) {
			return user.NewWarden(email, a.Name, wing, hash)
		}); err != nil {
			return result, fmt.Errorf("wardens[%d]: %w", i, err)
		}
	}
	for i, a := range file.Staff {
		if err := uc.seed(ctx, a, result, func(email *vo.Email, wing vo.Wing, hash string) (*user.User, error) {
			department, err := vo.NewDepartment(a.Department)
			if err != nil {
				return nil, err
			}
			return user.NewStaffMember(email, a.Name, department, wing, hash)
		}); err != nil {
			return result, fmt.Errorf("staff[%d]: %w", i, err)
		}
	}

	uc.logger.Infow("accounts seeded", "created", len(result.Created), "skipped", len(result.Skipped))
	return result, nil
}

func (uc *SeedAccountsUseCase) seed(
	ctx context.Context,
	a SeedAccount,
	result *SeedResult,
	build func(email *vo.Email, wing vo.Wing, hash string) (*user.User, error),
) error {
	email, err := vo.NewEmail(a.Email)
	if err != nil {
		return err
	}
	wing, err := vo.NewWing(a.Wing)
	if err != nil {
		return err
	}
	password, err := vo.NewPassword(a.Password)
	if err != nil {
		return err
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		return err
	}
	if exists {
		result.Skipped = append(result.Skipped, email.String())
		return nil
	}

	hash, err := uc.passwordHasher.Hash(password.String())
	if err != nil {
		return err
	}
	u, err := build(email, wing, hash)
	if err != nil {
		return err
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return err
	}

	result.Created = append(result.Created, email.String())
	return nil
}
