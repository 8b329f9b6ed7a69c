package services

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"docshub/api/errs"
)

// DirRemover deletes directory trees. Implementations must tolerate paths
// that do not exist.
type DirRemover interface {
	RemoveDirs(paths []string) error
}

type WipeService struct {
	Repo    Repository
	Remover DirRemover
	DocRoot string
}

func NewWipeService(repo Repository, remover DirRemover, docRoot string) *WipeService {
	return &WipeService{
		Repo:    repo,
		Remover: remover,
		DocRoot: docRoot,
	}
}

// WipeVersionViaSlugs removes every build artifact directory of the version
// identified by the (project, version) slug pair: its checkout, build env,
// conda env, and the project's shared cache. The deletion itself is
// delegated to the remover in a single call.
func (s *WipeService) WipeVersionViaSlugs(versionSlug, projectSlug string) error {
	project, err := s.Repo.FindProjectBySlug(projectSlug)
	if err != nil {
		return errs.ErrVersionNotFound
	}
	version, err := s.Repo.FindVersion(project.Id, versionSlug)
	if err != nil {
		return errs.ErrVersionNotFound
	}

	docPath := project.DocPath(s.DocRoot)
	delDirs := []string{
		filepath.Join(docPath, "checkouts", version.Slug),
		filepath.Join(docPath, "envs", version.Slug),
		filepath.Join(docPath, "conda", version.Slug),
		filepath.Join(docPath, ".cache"),
	}
	return s.Remover.RemoveDirs(delDirs)
}

// OsRemover deletes directories from the local filesystem. Missing paths
// are not an error.
type OsRemover struct{}

func (OsRemover) RemoveDirs(paths []string) error {
	for _, path := range paths {
		if err := os.RemoveAll(path); err != nil {
			log.Error().
				Err(err).
				Str("path", path).
				Msg("failed to remove directory")
			return err
		}
	}
	return nil
}
