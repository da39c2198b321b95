// @title Hackathon Platform API
// @version 1.0
// @description Backend API for hackathon management: organizer round lifecycle, participant registration, submissions, verification and certificates

// @securityDefinitions.apikey BearerToken
// @in header
// @name Authorization
package main

import (
	_ "github.com/Charan-Crafts/hackathon-platform/docs"

	"github.com/Charan-Crafts/hackathon-platform/api"
	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/spf13/viper"
)

func main() {
	logging.BootstrapLogger()

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
