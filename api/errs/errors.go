package errs

import (
	"errors"
	"net/http"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrVersionNotFound = errors.New("version not found")
	ErrBuildNotFound   = errors.New("build not found")
	ErrProjectConflict = errors.New("project already exists")
	ErrVersionConflict = errors.New("version already exists")
	ErrInvalidRepoURL  = errors.New("please provide a valid git url")
	ErrWipeFailed      = errors.New("failed to wipe version directories")
)

var ErrStatusMap = map[error]int{
	ErrProjectNotFound: http.StatusNotFound,
	ErrVersionNotFound: http.StatusNotFound,
	ErrBuildNotFound:   http.StatusNotFound,
	ErrProjectConflict: http.StatusConflict,
	ErrVersionConflict: http.StatusConflict,
	ErrInvalidRepoURL:  http.StatusUnprocessableEntity,
	ErrWipeFailed:      http.StatusInternalServerError,
}
