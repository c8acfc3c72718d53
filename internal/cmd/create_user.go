package cmd

import (
	"fmt"

	"marketplace/internal/database"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/services"

	"github.com/spf13/cobra"
)

var newUser struct {
	services.NewUser
	role string
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an account with an explicit role",
	Long: `Create an account with an explicit role. Registration through the API
only ever creates CUSTOMER accounts, so SELLER and ADMIN accounts are created
here or by an administrator.`,
	Example: "  marketplace create-user --username bakery --email bakery@example.com --password secret --role SELLER",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := models.ParseRole(newUser.role)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer database.Close(db)
		if err := database.Migrate(db); err != nil {
			return err
		}

		authService := services.NewAuthService(repositories.NewGORMUserRepository(db), services.NewTokenService(cfg.JWT.Secret))
		user, err := authService.CreateUser(cmd.Context(), newUser.NewUser, role)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s account %s (%s)\n", user.Role, user.Username, user.ID)
		return nil
	},
}

func init() {
	flags := createUserCmd.Flags()
	flags.StringVar(&newUser.Username, "username", "", "unique username")
	flags.StringVar(&newUser.FullName, "full-name", "", "display name")
	flags.StringVar(&newUser.Email, "email", "", "unique email address")
	flags.StringVar(&newUser.Password, "password", "", "initial password")
	flags.StringVar(&newUser.Phone, "phone", "", "phone number")
	flags.StringVar(&newUser.role, "role", string(models.RoleSeller), "CUSTOMER, SELLER or ADMIN")
	for _, name := range []string{"username", "email", "password"} {
		createUserCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(createUserCmd)
}
