package api

import (
	"sync"

	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	AuthConfig
	CacheConfig
}

type StorageConfig struct {
	TableNameHackathons    string
	TableNameUsers         string
	TableNameRegistrations string
	TableNameCertificates  string
}

type ServerConfig struct {
	Port int
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

type CacheConfig struct {
	RedisAddr             string
	LeaderboardTTLSeconds int
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			TableNameHackathons:    viper.GetString("storage.TableNameHackathons"),
			TableNameUsers:         viper.GetString("storage.TableNameUsers"),
			TableNameRegistrations: viper.GetString("storage.TableNameRegistrations"),
			TableNameCertificates:  viper.GetString("storage.TableNameCertificates"),
		},
		ServerConfig: ServerConfig{
			Port: getIntOrDefault("server.port", 8080),
		},
		AuthConfig: AuthConfig{
			JWTSecret:     getString("auth.JWTSecret"),
			TokenTTLHours: getIntOrDefault("auth.TokenTTLHours", 168),
		},
		CacheConfig: CacheConfig{
			RedisAddr:             getStringOrDefault("cache.RedisAddr", ""),
			LeaderboardTTLSeconds: getIntOrDefault("cache.LeaderboardTTLSeconds", 15),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getString(name string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Fatalf("required environment variable '%s' is missing", name)
	return ""
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
