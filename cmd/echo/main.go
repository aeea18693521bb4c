// Command echo finds documents across OneDrive and SharePoint and answers
// HR and document questions.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driven/ai"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driven/auth"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driven/config/file"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driven/extractor"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driven/graph"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driven/storage/memory"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driven/storage/sqlite"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/cli"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/services"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/normalisers"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	if _, err := file.LoadEnv(file.EnvPaths("")...); err != nil {
		logger.Warn("%v", err)
	}

	var configStore driven.ConfigStore
	if fs, err := file.NewConfigStore(""); err != nil {
		logger.Warn("config: %v, settings will not be saved", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fs
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var tokenCache driven.TokenCacheStore
	if store, err := sqlite.NewStore(settings.DataDir); err != nil {
		logger.Warn("token cache: %v, sign-in will last for this run only", err)
		tokenCache = memory.NewTokenCacheStore()
	} else {
		defer store.Close()
		tokenCache = store.TokenCacheStore()
	}

	httpClient := &http.Client{}
	oauthConfig := auth.OAuthConfig(settings.Graph)
	tokens := auth.NewTokenProvider(tokenCache, oauthConfig, httpClient)
	authorizer := auth.NewAuthorizer(settings.Graph, httpClient)

	invoker := graph.NewInvoker(httpClient, tokens, settings.Invoker)
	client := graph.NewClient(invoker, settings.Graph.BaseURL)
	downloader := graph.NewDownloader(invoker, settings.Graph.BaseURL)
	mailer := graph.NewMailer(invoker, settings.Graph.BaseURL)

	var prompts driven.PromptStore
	if ps, err := file.NewPromptStore(""); err != nil {
		logger.Warn("prompts: %v, using built-in prompts", err)
	} else {
		prompts = ps
	}
	aiServices := ai.Init(settings, prompts)
	defer aiServices.Close()
	for _, w := range aiServices.Warnings {
		logger.Warn("%s", w)
	}

	var ranker *services.SemanticRanker
	if settings.Search.Semantic {
		ranker = services.NewSemanticRanker(aiServices.EmbeddingService)
	}

	searchService, err := services.NewSearchService(client, ranker, settings.Search)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer searchService.Close()

	assistantService := services.NewAssistantService(
		searchService,
		ranker,
		extractor.New(downloader, normalisers.Defaults()),
		aiServices.Classifier,
		aiServices.Answerer,
		settings.Search,
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:    searchService,
		Assistant: assistantService,
		Auth:      services.NewAuthService(tokenCache, tokens, authorizer, client),
		Settings:  settingsService,
		Notify:    services.NewNotifyService(mailer, client),
		AccountID: settings.AccountID,
	})

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
