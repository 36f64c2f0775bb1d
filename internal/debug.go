package internal

import (
	"fmt"
	"os"
	"os/user"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/sirupsen/logrus"
)

var (
	sessionVarRegex   = regexp.MustCompile(`^(XDG_|GDM|DESKTOP_SESSION|DISPLAY$|WAYLAND_DISPLAY$|DBUS_SESSION_BUS_ADDRESS$|GDM_AUTO_BLUR_)`)
	sensitiveVarRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)
)

func ShowVersion(logger *logrus.Logger) {
	logger.Debugf("Version: %s", versioninfo.Short())
}

// SessionVars logs the desktop session environment that gsettings and the theme tool depend on
func SessionVars(logger *logrus.Logger) {
	for _, kv := range SessionEnviron(os.Environ()) {
		logger.Debugf("  %s", kv)
	}
}

// SessionEnviron filters environ down to desktop session variables, sorted by key,
// with sensitive values masked.
func SessionEnviron(environ []string) []string {
	entries := make([]string, 0, len(environ))
	for _, entry := range environ {
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) != 2 || !sessionVarRegex.MatchString(kv[0]) {
			continue
		}
		if sensitiveVarRegex.MatchString(kv[0]) {
			kv[1] = "********"
		}
		entries = append(entries, kv[0]+"="+kv[1])
	}
	sort.Slice(entries, func(i, j int) bool {
		keyI := strings.SplitN(entries[i], "=", 2)[0]
		keyJ := strings.SplitN(entries[j], "=", 2)[0]
		return keyI < keyJ
	})
	return entries
}

// UserInfo logs who we run as; the theme tool needs to escalate privileges to write the gresource
func UserInfo(logger *logrus.Logger) {
	logger.Debugf("PID: %d", os.Getpid())
	currentUser, err := user.Current()
	if err != nil {
		logger.Debugf("Error getting current user: %v", err)
	} else {
		logger.Debugf("User: uid=%s(%s) gid=%s", currentUser.Uid, currentUser.Username, currentUser.Gid)
	}
	groups, err := os.Getgroups()
	if err != nil {
		logger.Debugf("Error getting groups: %v", err)
		return
	}
	groupNames := make([]string, 0, len(groups))
	for _, gid := range groups {
		group, err := user.LookupGroupId(strconv.Itoa(gid))
		if err != nil {
			groupNames = append(groupNames, strconv.Itoa(gid))
		} else {
			groupNames = append(groupNames, fmt.Sprintf("%s(%s)", group.Name, group.Gid))
		}
	}
	logger.Debugf("Groups: %v", groupNames)
}
