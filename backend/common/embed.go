package common

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/static"
)

type embedFileSystem struct {
	http.FileSystem
}

func (e embedFileSystem) Exists(prefix string, path string) bool {
	_, err := e.Open(path)
	return err == nil
}

// EmbedFolder adapts an embedded directory for the static file middleware.
func EmbedFolder(fsEmbed embed.FS, targetPath string) static.ServeFileSystem {
	sub, err := fs.Sub(fsEmbed, targetPath)
	if err != nil {
		FatalLog("embedded folder not found: " + targetPath)
	}
	return embedFileSystem{
		FileSystem: http.FS(sub),
	}
}
