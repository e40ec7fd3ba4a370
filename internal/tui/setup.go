package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/theirongolddev/selforge/internal/config"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the setup form as the form edits them.
type SetupValues struct {
	Name       string
	Age        string
	Gender     string
	BodyWeight string
	APIKey     string
	Online     bool
	Theme      string
}

// SetupValuesFrom seeds the form with the current configuration and profile.
func SetupValuesFrom(cfg config.Config, p model.Profile) SetupValues {
	v := SetupValues{
		Name:       p.Name,
		Gender:     p.Gender,
		BodyWeight: strconv.FormatFloat(cfg.Profile.BodyWeightKg, 'f', -1, 64),
		APIKey:     cfg.AI.APIKey,
		Online:     cfg.Online.Enabled,
		Theme:      cfg.Appearance.Theme,
	}
	if p.Age > 0 {
		v.Age = strconv.Itoa(p.Age)
	}
	return v
}

// NewSetupForm builds the first-run form bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to selforge").
				Description("A few questions so calorie estimates fit you.\nEverything stays on this machine."),
			huh.NewInput().
				Title("What should we call you?").
				Value(&v.Name),
			huh.NewInput().
				Title("Age").
				Placeholder("optional").
				Validate(optionalInt).
				Value(&v.Age),
			huh.NewSelect[string]().
				Title("Gender").
				Options(
					huh.NewOption("prefer not to say", ""),
					huh.NewOption("female", "female"),
					huh.NewOption("male", "male"),
					huh.NewOption("other", "other"),
				).
				Value(&v.Gender),
			huh.NewInput().
				Title("Body weight (kg)").
				Description("Used for cardio burn estimates.").
				Validate(validWeight).
				Value(&v.BodyWeight),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("AI API key").
				Description("DeepSeek-compatible key for parsing and estimates. Leave blank to stay offline.").
				EchoMode(huh.EchoModePassword).
				Value(&v.APIKey),
			huh.NewConfirm().
				Title("Look foods up in Open Food Facts?").
				Affirmative("Yes").
				Negative("No").
				Value(&v.Online),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}

// Apply writes the answers into cfg and returns the profile to store.
func (v SetupValues) Apply(cfg config.Config) (config.Config, model.Profile, error) {
	if err := validWeight(v.BodyWeight); err != nil {
		return cfg, model.Profile{}, err
	}
	if err := optionalInt(v.Age); err != nil {
		return cfg, model.Profile{}, err
	}
	cfg.Profile.BodyWeightKg, _ = strconv.ParseFloat(strings.TrimSpace(v.BodyWeight), 64)
	if key := strings.TrimSpace(v.APIKey); key != "" {
		cfg.AI.APIKey = key
	}
	cfg.Online.Enabled = v.Online
	cfg.Appearance.Theme = theme.ByName(v.Theme).Name

	p := model.Profile{
		Name:   strings.TrimSpace(v.Name),
		Gender: v.Gender,
	}
	p.Age, _ = strconv.Atoi(strings.TrimSpace(v.Age))
	cfg.Profile.Age = p.Age
	return cfg, p, nil
}

func validWeight(s string) error {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || w < 20 || w > 400 {
		return errors.New("enter a weight between 20 and 400 kg")
	}
	return nil
}

func optionalInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 130 {
		return errors.New("enter a whole number of years")
	}
	return nil
}
