package constants

// Version и PreCommitHash задаются при сборке:
//
//	go build -ldflags "-X github.com/Kargones/logroute/internal/constants.Version=1.2.0 \
//	  -X github.com/Kargones/logroute/internal/constants.PreCommitHash=$(git rev-parse --short HEAD)"
var (
	// Version - версия приложения
	Version = "dev"
	// PreCommitHash - хеш коммита сборки
	PreCommitHash = ""
)
