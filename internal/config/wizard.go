package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the
// resulting config to .legisverde.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Bem-vindo ao legisverde! Vamos configurar o assistente.")
	fmt.Println()

	cfg := DefaultConfig()

	providerPrompt := promptui.Select{
		Label: "Provedor de LLM",
		Items: []string{"openai", "google", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	switch cfg.Provider {
	case ProviderGoogle:
		cfg.Model = "gemini-2.5-pro"
	case ProviderOllama:
		cfg.Model = "llama3"
		cfg.EmbeddingProvider = ProviderOllama
		cfg.EmbeddingModel = "nomic-embed-text"
	}

	dataPrompt := promptui.Prompt{
		Label:   "Diretório de dados (índice vetorial e registro)",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	portPrompt := promptui.Prompt{
		Label:   "Porta HTTP",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			_, err := strconv.Atoi(s)
			return err
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(".legisverde.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuração gravada em .legisverde.yml")
	if key := APIKeyEnvVar(cfg.Provider); key != "" {
		fmt.Printf("Lembre-se de definir %s antes de iniciar o servidor.\n", key)
	}

	return cfg, nil
}
