package cli

var (
	verbose      bool
	settingsPath string
	outputFormat string

	// surface selection, shared by run, replay, displays and gesture
	backend    string
	adbSerial  string
	wdaAddress string
	surfaceID  string

	// for run command
	touchDevice string
	touchWidth  int
	touchHeight int
	grabDevice  bool
	recordPath  string
	sensitivity float64
	runDaemon   bool

	// for replay command
	replayRealtime bool
	replayDryRun   bool

	// for gesture command
	gestureAt string
	scrollDY  float64
)
