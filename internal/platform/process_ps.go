package platform

import (
	"context"
	"path"
	"strconv"
	"strings"
)

// psTree implements processTree with ps(1), for systems where neither
// procfs nor gopsutil can walk the process table.
type psTree struct {
	src Source
	pid int
}

// psEntry runs `ps -o ppid= -o comm= -p pid` and splits its single line.
func (t psTree) psEntry(ctx context.Context, pid int) (int, string, error) {
	out, err := t.src.Run(ctx, "ps", "-o", "ppid=", "-o", "comm=", "-p", strconv.Itoa(pid))
	if err != nil {
		return 0, "", FromProbeError("ps", err)
	}
	return parsePSLine(firstLine(out))
}

func parsePSLine(line string) (int, string, error) {
	ppidField, comm, ok := strings.Cut(strings.TrimSpace(line), " ")
	if !ok {
		return 0, "", NotAvailable("ps printed no process")
	}
	ppid, err := strconv.Atoi(ppidField)
	if err != nil {
		return 0, "", Other("malformed ps output", err)
	}
	return ppid, strings.TrimSpace(comm), nil
}

func (t psTree) Ancestor(ctx context.Context, hops int) (procInfo, error) {
	pid := t.pid
	for i := 0; i < hops; i++ {
		ppid, _, err := t.psEntry(ctx, pid)
		if err != nil {
			return procInfo{}, err
		}
		if ppid <= 0 {
			return procInfo{}, NotAvailable("process has no ancestor at this depth")
		}
		pid = ppid
	}
	_, comm, err := t.psEntry(ctx, pid)
	if err != nil {
		return procInfo{}, err
	}
	info := procInfo{Name: path.Base(comm)}
	if strings.HasPrefix(comm, "/") {
		info.Exe = comm
	}
	return info, nil
}
