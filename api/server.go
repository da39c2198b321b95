package api

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Charan-Crafts/hackathon-platform/api/controllers"
	"github.com/Charan-Crafts/hackathon-platform/api/transport"
	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/Charan-Crafts/hackathon-platform/storage"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	transport.ConfigureAuth(s.config.JWTSecret, time.Duration(s.config.TokenTTLHours)*time.Hour)

	// Create storage
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}

	dynamoClient := dynamodb.NewFromConfig(cfg)

	hackathonStorage := &storage.DynamoHackathonStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameHackathons,
	}
	userStorage := &storage.DynamoUserStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameUsers,
	}
	registrationStorage := &storage.DynamoRegistrationStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameRegistrations,
	}
	certificateStorage := &storage.DynamoCertificateStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameCertificates,
	}

	var leaderboardCache storage.LeaderboardCache = storage.NoopLeaderboardCache{}
	if s.config.RedisAddr != "" {
		leaderboardCache = &storage.RedisLeaderboardCache{
			Client: redis.NewClient(&redis.Options{Addr: s.config.RedisAddr}),
			TTL:    time.Duration(s.config.LeaderboardTTLSeconds) * time.Second,
		}
	}

	//Register controllers
	authController := controllers.NewAuthController(userStorage)
	authController.RegisterRoutes(r)
	hackathonController := controllers.NewHackathonController(hackathonStorage)
	hackathonController.RegisterRoutes(r)
	roundController := controllers.NewRoundController(hackathonStorage)
	roundController.RegisterRoutes(r)
	registrationController := controllers.NewRegistrationController(registrationStorage, hackathonStorage)
	registrationController.RegisterRoutes(r)
	submissionController := controllers.NewSubmissionController(hackathonStorage, registrationStorage, leaderboardCache)
	submissionController.RegisterRoutes(r)
	certificateController := controllers.NewCertificateController(certificateStorage, registrationStorage, hackathonStorage)
	certificateController.RegisterRoutes(r)
	leaderboardController := controllers.NewLeaderboardController(hackathonStorage, leaderboardCache)
	leaderboardController.RegisterRoutes(r)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// startLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// startLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
