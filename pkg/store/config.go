package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config provides the settings the store and its collaborators need.
type Config interface {
	BasePath() string
	PromptService() PromptService
}

// PromptService holds the prompt-generation collaborator settings.
type PromptService struct {
	URL    string
	Model  string
	APIKey string
}

// LoadConfig discovers settings from a .saga config file and SAGA_*
// environment variables.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.saga.db")
	viper.SetDefault("prompt.url", "http://127.0.0.1:8000/generate-prompt")
	viper.SetDefault("prompt.model", "")
	viper.SetConfigName(".saga") // .yaml is implicit
	viper.SetEnvPrefix("SAGA")
	viper.AutomaticEnv()

	if override := os.Getenv("SAGA_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path: path,
		Prompt: PromptService{
			URL:    viper.GetString("prompt.url"),
			Model:  viper.GetString("prompt.model"),
			APIKey: viper.GetString("prompt.api_key"),
		},
	}, nil
}

type fileConfig struct {
	Path   string        `json:"path"`
	Prompt PromptService `json:"prompt"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) PromptService() PromptService {
	return f.Prompt
}
