package main

import (
	"anonforum/internal/alias"
	"anonforum/internal/config"
	"anonforum/internal/database"
	"anonforum/internal/repository"
	"anonforum/internal/service"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDB connects without running migrations. The caller must close it.
func openDB() (*sqlx.DB, error) {
	cfg := config.LoadConfig()

	db, err := sqlx.Connect("postgres", database.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("connexion à la base : %w", err)
	}
	return db, nil
}

var rootCmd = &cobra.Command{
	Use:   "forumctl",
	Short: "Outils d'administration du forum",
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Appliquer les migrations en attente",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.MigrateUp(db.DB); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Migrations appliquées")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Afficher la version du schéma",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		version, dirty, err := database.MigrationVersion(db.DB)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Version : %d (dirty : %t)\n", version, dirty)
		return nil
	},
}

var backfillCmd = &cobra.Command{
	Use:   "backfill-aliases",
	Short: "Attribuer un alias principal aux comptes qui n'en ont pas",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		repo := repository.NewRepository(db)
		aliases := service.NewAliasService(repo.Alias, nil)

		created, failed, err := backfillPrimaryAliases(cmd.Context(), repo.User, aliases, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d alias créés, %d échecs\n", created, failed)
		if failed > 0 {
			return fmt.Errorf("%d comptes sans alias principal", failed)
		}
		return nil
	},
}

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Outils sur les alias",
}

var aliasGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Générer des alias sans les enregistrer",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		if count < 1 {
			return fmt.Errorf("count doit être positif")
		}

		gen := alias.NewGenerator(nil)
		for i := 0; i < count; i++ {
			fmt.Fprintln(cmd.OutOrStdout(), gen.Generate())
		}
		return nil
	},
}

var aliasSpaceCmd = &cobra.Command{
	Use:   "space",
	Short: "Afficher le nombre de noms possibles",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%d noms possibles\n", alias.Namespace())
	},
}

func init() {
	migrateCmd.AddCommand(migrateVersionCmd)

	aliasCmd.AddCommand(aliasGenerateCmd)
	aliasCmd.AddCommand(aliasSpaceCmd)
	aliasGenerateCmd.Flags().IntP("count", "n", 5, "Nombre d'alias à générer")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(backfillCmd)
	rootCmd.AddCommand(aliasCmd)
}
