package dfu

// IdleResult is the outcome of MakeIdle.
type IdleResult int

const (
	// IdleReady means the device reported DFU_IDLE with status OK.
	IdleReady IdleResult = iota
	// IdleResetPerformed means the device was reset and must be reopened.
	IdleResetPerformed
	// IdleFailed means the device did not settle within the retry budget.
	IdleFailed
)

func (r IdleResult) String() string {
	switch r {
	case IdleReady:
		return "ready"
	case IdleResetPerformed:
		return "reset performed"
	default:
		return "failed"
	}
}

const makeIdleRetries = 4

// MakeIdle drives the device into DFU_IDLE. Each of the four iterations
// fetches the status and takes one corrective step. A failed status fetch
// is followed by CLRSTATUS and counts as an iteration.
func (s *Session) MakeIdle(initialAbort bool) (IdleResult, error) {
	if !s.initialized() {
		return IdleFailed, ErrNotInitialized
	}
	if initialAbort {
		if err := s.Abort(); err != nil {
			s.log.Debugf("initial abort: %v", err)
		}
	}

	for retries := makeIdleRetries; retries > 0; retries-- {
		reply, err := s.UpdateStatus()
		if err != nil {
			s.log.Debugf("make idle: status fetch failed: %v", err)
			s.ClearStatus()
			continue
		}

		switch reply.State {
		case DFUIdle:
			if reply.Status == StatusOK {
				return IdleReady, nil
			}
			s.ClearStatus()
		case DFUDownloadSync, DFUDownloadIdle, DFUManifestSync,
			DFUUploadIdle, DFUDownloadBusy, DFUManifest:
			s.Abort()
		case DFUError:
			s.ClearStatus()
		case AppIdle:
			s.Detach(DetachTimeout)
		case AppDetach, DFUManifestWaitReset:
			s.log.Debugf("make idle: resetting device in %s", reply.State)
			if err := s.Reset(); err != nil {
				return IdleFailed, err
			}
			return IdleResetPerformed, nil
		}
	}

	s.log.Debugf("make idle: not idle after %d tries", makeIdleRetries)
	return IdleFailed, nil
}
