package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jsreddy3/persona-backend/config"
	"github.com/jsreddy3/persona-backend/controller"
	"github.com/jsreddy3/persona-backend/dao"
	"github.com/jsreddy3/persona-backend/logic"
	"github.com/jsreddy3/persona-backend/middleware"
	"github.com/jsreddy3/persona-backend/models"
	"github.com/jsreddy3/persona-backend/pkg"
)

func main() {
	// Initialize config
	if len(os.Args) < 2 {
		log.Fatal().Msg("Usage: persona-backend <config.yaml>")
	}
	configFile := os.Args[1]
	if err := config.LoadConfig(configFile); err != nil {
		log.Fatal().Err(err).Str("file", configFile).Msg("Failed to load config")
	}

	setupLogger()

	// Initialize database
	db, err := gorm.Open(postgres.Open(config.GlobalConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Character{},
		&models.Conversation{},
		&models.Message{},
	); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Initialize external clients
	chatClient := pkg.NewChatClient(
		config.GlobalConfig.Chat.APIKey,
		config.GlobalConfig.Chat.BaseURL,
		config.GlobalConfig.Chat.Model,
		config.GlobalConfig.Chat.MaxTokens,
	)
	worldIDClient := pkg.NewWorldIDClient(
		config.GlobalConfig.WorldID.AppID,
		config.GlobalConfig.WorldID.Action,
		config.GlobalConfig.WorldID.VerifyURL,
	)

	// Initialize DAOs
	userDAO := dao.NewUserDAO(db)
	sessionDAO := dao.NewSessionDAO(db)
	characterDAO := dao.NewCharacterDAO(db)
	convoDAO := dao.NewConversationDAO(db)
	messageDAO := dao.NewMessageDAO(db)

	// Initialize Logics
	prompts, err := logic.NewPromptAssembler()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load prompt templates")
	}
	ledger := logic.NewCreditLedger(userDAO)
	sessionTTL := time.Duration(config.GlobalConfig.Auth.ExpHour) * time.Hour
	authLogic := logic.NewAuthLogic(userDAO, sessionDAO, worldIDClient, config.GlobalConfig.Auth.Secret, sessionTTL)
	userLogic := logic.NewUserLogic(userDAO, characterDAO)
	characterLogic := logic.NewCharacterLogic(characterDAO)
	convoLogic := logic.NewConversationLogic(convoDAO, messageDAO, characterDAO)
	streamLogic := logic.NewStreamLogic(
		convoDAO, messageDAO, characterDAO,
		ledger, prompts, chatClient,
		config.GlobalConfig.Chat.MessageCost,
	)

	// Initialize Controllers
	userCtrl := controller.NewUserController(authLogic, userLogic)
	characterCtrl := controller.NewCharacterController(characterLogic)
	convoCtrl := controller.NewConversationController(convoLogic)
	messageCtrl := controller.NewMessageController(streamLogic)

	// Setup Gin router
	r := gin.Default()
	auth := middleware.Auth(authLogic)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/users/verify", userCtrl.Verify)
	r.GET("/users/me", auth, userCtrl.GetMe)
	r.GET("/users/me/stats", auth, userCtrl.GetStats)
	r.POST("/users/me/credits/purchase", auth, userCtrl.PurchaseCredits)

	r.POST("/characters", auth, characterCtrl.CreateCharacter)
	r.GET("/characters/popular", characterCtrl.GetPopularCharacters)
	r.GET("/characters/mine", auth, characterCtrl.GetMyCharacters)
	r.GET("/characters/:id", characterCtrl.GetCharacter)
	r.GET("/characters/:id/stats", characterCtrl.GetCharacterStats)
	r.PUT("/characters/:id/photo", auth, characterCtrl.UpdateCharacterPhoto)

	r.POST("/conversations", auth, convoCtrl.CreateConversation)
	r.GET("/conversations", auth, convoCtrl.GetConversations)
	r.GET("/conversations/:id/messages", auth, convoCtrl.GetMessages)
	r.POST("/conversations/:id/messages", auth, messageCtrl.AddMessage)
	r.GET("/conversations/:id/stream", auth, messageCtrl.StreamMessage)

	// Run server
	if err := r.Run(fmt.Sprintf(":%d", config.GlobalConfig.Server.Port)); err != nil {
		log.Fatal().Err(err).Msg("Failed to run server")
	}
}

func setupLogger() {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GlobalConfig.Log.Level))
	if err != nil || config.GlobalConfig.Log.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if config.GlobalConfig.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
