package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"portal/config"
	"portal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection, migrates the models and populates the database with default values if needed
func InitDB() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Attempt{},
		&models.Application{},
	)
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	Populate()
}

// Populate populates the database with default values if needed
func Populate() {
	// Promote the configured Discord account to admin if it already logged in
	if config.DefaultAdminDiscordID != "" {
		var admin models.User
		if err := DB.Where("discord_id = ?", config.DefaultAdminDiscordID).First(&admin).Error; err == nil && !admin.Admin {
			admin.Admin = true
			DB.Save(&admin)
			log.Println("Default admin promoted: ", admin.Username)
		}
	}

	// Seed the question bank from the seed file when the bank is empty
	var countQuestions int64
	DB.Model(&models.Question{}).Count(&countQuestions)
	if countQuestions == 0 {
		questions, err := LoadQuestionSeed(config.QuestionsSeedFile)
		if err != nil {
			log.Println("No question seed loaded: ", err)
			return
		}
		for _, question := range questions {
			if !question.Valid() {
				log.Printf("Skipping invalid seed question %q", question.Text)
				continue
			}
			if err := DB.Create(&question).Error; err != nil {
				log.Println("Error while seeding question: ", err)
			}
		}
		log.Printf("Question bank seeded with %d questions", len(questions))
	}
}

// LoadQuestionSeed reads a JSON array of questions from the given file
func LoadQuestionSeed(path string) ([]models.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	// Positions default to file order when omitted
	for i := range questions {
		if questions[i].Position == 0 {
			questions[i].Position = i + 1
		}
	}
	return questions, nil
}
