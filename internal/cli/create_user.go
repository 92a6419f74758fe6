package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkarpov/readshelf/internal/auth"
	"github.com/mkarpov/readshelf/internal/config"
	"github.com/mkarpov/readshelf/internal/database"
	"github.com/mkarpov/readshelf/internal/entities"
)

// CreateUserCommand creates a user account in the application database.
type CreateUserCommand struct {
	DatabasePath string
	Username     string
	Email        string
	Password     string
	Admin        bool
}

// NewCreateUserCommand creates a new CreateUserCommand
func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

// ParseFlags parses command line flags
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the application database file")
	fs.StringVar(&cmd.Username, "username", "", "Username for the new account")
	fs.StringVar(&cmd.Email, "email", "", "Email address for the new account")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new account")
	fs.BoolVar(&cmd.Admin, "admin", false, "Grant the administrator role")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account in the application database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -username alice -email alice@example.com -password 'correct horse battery'\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-user -username admin -email admin@example.com -password '...' -admin\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" || cmd.Email == "" || cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("username, email and password are required")
	}

	return nil
}

// Run executes the create-user command
func (cmd *CreateUserCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	cfg := config.NewConfig()
	service := auth.NewService(db.DB, cfg.Auth)

	role := entities.UserRoleViewer
	if cmd.Admin {
		role = entities.UserRoleAdmin
	}

	user, err := service.CreateUser(cmd.Username, cmd.Email, cmd.Password, role)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %s (id=%d, role=%s)\n", user.Username, user.ID, user.Role)
	return nil
}
