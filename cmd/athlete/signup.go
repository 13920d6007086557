// ABOUTME: CLI command for registering athletes.
// ABOUTME: Validates date of birth and creates the height/weight placeholder.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/i18n"
	"github.com/harperreed/athlete/internal/models"
)

var (
	signupDOB      string
	signupGender   string
	signupSport    string
	signupRole     string
	signupContact  string
	signupLanguage string
)

var signupCmd = &cobra.Command{
	Use:   "signup <first-name> <last-name>",
	Short: "Register a new athlete",
	Long: `Register a new athlete profile.

The athlete must be at least one year old on the sign-up date. A placeholder
height & weight result is created; submit it later with 'athlete measure'.

EXAMPLES:

  athlete signup Priya Sharma --dob 2008-05-15 --gender female --sport athletics --role Sprinter
  athlete signup Rohan Verma --dob 2007-11-02 --sport cricket --language hi`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if signupDOB == "" {
			return fmt.Errorf("--dob is required (YYYY-MM-DD)")
		}
		dob, err := parseTime(signupDOB)
		if err != nil {
			return fmt.Errorf("invalid date of birth: %s", signupDOB)
		}

		a := models.NewAthlete(args[0], args[1]).
			WithDOB(dob).
			WithContact(signupContact).
			WithLanguage(models.ParseLanguage(signupLanguage))
		if signupGender != "" {
			g, ok := models.ParseGender(signupGender)
			if !ok {
				return fmt.Errorf("unknown gender: %s (use male, female, or other)", signupGender)
			}
			a.WithGender(g)
		}
		if signupSport != "" {
			s, ok := models.ParseSport(signupSport)
			if !ok {
				return fmt.Errorf("unknown sport: %s\nValid sports: %s", signupSport, sportList())
			}
			a.WithSport(s, signupRole)
		}

		years, err := svc.SignUp(cmd.Context(), a, svc.Now())
		if err != nil {
			return fmt.Errorf("failed to sign up: %w", err)
		}

		out := cmd.OutOrStdout()
		lang := outputLanguage(a.Language)
		color.New(color.FgGreen).Fprintf(out, "✓ Signed up %s\n", a.FullName())
		fmt.Fprintf(out, "  %s %s\n",
			color.New(color.Faint).Sprint(a.ID.String()[:8]),
			resolver.Resolve("you_are_age", lang, i18n.Params{"age": years}))
		return nil
	},
}

func sportList() string {
	names := make([]string, len(models.AllSports))
	for i, s := range models.AllSports {
		names[i] = strings.ToLower(string(s))
	}
	return strings.Join(names, ", ")
}

func init() {
	signupCmd.Flags().StringVar(&signupDOB, "dob", "", "date of birth (YYYY-MM-DD)")
	signupCmd.Flags().StringVar(&signupGender, "gender", "", "male, female, or other")
	signupCmd.Flags().StringVar(&signupSport, "sport", "", "primary sport")
	signupCmd.Flags().StringVar(&signupRole, "role", "", "role or position in the sport")
	signupCmd.Flags().StringVar(&signupContact, "contact", "", "email or phone")
	signupCmd.Flags().StringVar(&signupLanguage, "language", "", "preferred language (en, hi, ta, te)")
	rootCmd.AddCommand(signupCmd)
}
