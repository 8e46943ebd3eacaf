// Package docker runs scorer commands inside containers for hosts that do
// not carry the scorers' Python environments.
package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/moby/moby/api/types/container"
	"github.com/moby/moby/api/types/mount"
	"github.com/moby/moby/client"

	"github.com/frontsea320/Reinf-t2i/internal/proc"
	"github.com/frontsea320/Reinf-t2i/internal/secrets"
)

// Executor satisfies the same contract as local execution but launches the
// command in Image. The benchmark root is bind-mounted at its host path and
// the working directory set inside it, so the scorers' ../examples output
// paths land in the host tree either way.
type Executor struct {
	Image string
	Root  string
}

func (e *Executor) Run(ctx context.Context, argv []string, dir string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	display := strings.Join(argv, " ")

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("creating docker client: %w", err)
	}
	defer cli.Close()

	var env []string
	if key := os.Getenv(secrets.CredentialVar); key != "" {
		env = append(env, secrets.CredentialVar+"="+key)
	}

	initTrue := true
	hostCfg := &container.HostConfig{
		Mounts: []mount.Mount{
			{Type: mount.TypeBind, Source: e.Root, Target: e.Root},
		},
		Init: &initTrue,
	}
	containerCfg := &container.Config{
		Image:      e.Image,
		Cmd:        argv,
		Env:        env,
		WorkingDir: dir,
		Labels:     map[string]string{"reinf-t2i": "true"},
	}

	createResp, err := cli.ContainerCreate(ctx, client.ContainerCreateOptions{
		Config:     containerCfg,
		HostConfig: hostCfg,
	})
	if err != nil {
		return fmt.Errorf("creating container: %w", err)
	}
	containerID := createResp.ID
	defer func() {
		cli.ContainerRemove(context.Background(), containerID, client.ContainerRemoveOptions{Force: true})
	}()

	if _, err := cli.ContainerStart(ctx, containerID, client.ContainerStartOptions{}); err != nil {
		return fmt.Errorf("starting container: %w", err)
	}

	waitResult := cli.ContainerWait(ctx, containerID, client.ContainerWaitOptions{
		Condition: container.WaitConditionNotRunning,
	})
	for {
		select {
		case err := <-waitResult.Error:
			if err != nil {
				cli.ContainerKill(context.Background(), containerID, client.ContainerKillOptions{Signal: "SIGKILL"})
				dumpLogs(cli, containerID)
				return &proc.CommandError{Command: display, Dir: dir, Err: err}
			}
			// nil means nothing failed on this channel; keep waiting
		case status := <-waitResult.Result:
			dumpLogs(cli, containerID)
			if status.StatusCode != 0 {
				return &proc.CommandError{
					Command: display,
					Dir:     dir,
					Err:     fmt.Errorf("exit status %d", status.StatusCode),
				}
			}
			return nil
		}
	}
}

func dumpLogs(cli *client.Client, containerID string) {
	logReader, err := cli.ContainerLogs(context.Background(), containerID, client.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       "200",
	})
	if err != nil || logReader == nil {
		return
	}
	defer logReader.Close()
	if data, err := io.ReadAll(logReader); err == nil && len(data) > 0 {
		fmt.Fprintf(os.Stderr, "%s", data)
	}
}
