// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	awsx "github.com/apidiff/apidiff/internal/aws"
	"github.com/apidiff/apidiff/internal/snapshot"
	"github.com/apidiff/apidiff/internal/verutil"
)

// StoreS3 keeps a snapshot document as a single versioned S3 object. The
// bucket's object versions are the snapshot versions, so writing a new
// snapshot to the same key is all it takes to grow history.
type StoreS3 struct {
	Ctx     context.Context
	Cmd     *cli.Command
	Bucket  string
	Key     string
	Region  string
	Profile string
}

func (st *StoreS3) Snapshot() ([]byte, error) {
	docs, err := st.Snapshots()
	if err != nil {
		return nil, err
	}
	return docs[0], nil
}

// SnapshotBody returns the document bytes for one S3 object version, read
// through the on-disk cache.
func (st *StoreS3) SnapshotBody(versionID string) ([]byte, error) {
	if err := PurgeCache(); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	if entry, ok := CacheReader(st, versionID); ok {
		return entry.Data, nil
	}

	svc, err := st.client()
	if err != nil {
		return nil, err
	}

	input := &s3v2.GetObjectInput{
		Bucket:    awsv2.String(st.Bucket),
		Key:       awsv2.String(st.Key),
		VersionId: awsv2.String(versionID),
	}

	result, err := svc.GetObject(st.Ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	if err := CacheWriter(st, versionID, data); err != nil {
		log.WithError(err).Error("error writing to cache")
	}

	return data, nil
}

func (st *StoreS3) Snapshots(specs ...string) ([][]byte, error) {
	var results [][]byte

	candidates, err := st.Versions()
	if err != nil {
		return nil, err
	}

	versions, err := verutil.Resolve(candidates, specs...)
	if err != nil {
		return nil, err
	}
	log.Debugf("versions: %v", versions)

	// Now pound through the found versions and return each of their documents.
	for _, v := range versions {
		body, err := st.SnapshotBody(v.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get snapshot: %w", err)
		}
		results = append(results, body)
	}

	return results, nil
}

// Versions lists the object versions behind st.Key, newest first, with ID as
// the S3 version id and CreatedAt from the object timestamp. Each surviving
// version's body is pulled (through the cache) to count its per-file forests.
func (st *StoreS3) Versions() ([]*verutil.Version, error) {
	svc, err := st.client()
	if err != nil {
		return nil, err
	}

	paginator := s3v2.NewListObjectVersionsPaginator(svc, &s3v2.ListObjectVersionsInput{
		Bucket: awsv2.String(st.Bucket),
		Prefix: awsv2.String(st.Key),
	})

	var allDeleteMarkers []types.DeleteMarkerEntry
	var allVersions []types.ObjectVersion
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(st.Ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list object versions: %w", err)
		}
		allDeleteMarkers = append(allDeleteMarkers, page.DeleteMarkers...)
		allVersions = append(allVersions, page.Versions...)
	}

	var mostRecentDelete time.Time
	for _, d := range allDeleteMarkers {
		// This filters out neighboring objects. The prefix is literally a
		// prefix so anything sharing it comes back from the AWS API.
		if d.Key == nil || *d.Key != st.Key {
			if d.Key != nil {
				log.Debugf("Throwing away delete marker %s", *d.Key)
			}
			continue
		}
		if d.LastModified != nil && d.LastModified.After(mostRecentDelete) {
			mostRecentDelete = *d.LastModified
		}
	}

	kept := []types.ObjectVersion{}
	for _, v := range allVersions {
		if v.Key == nil || *v.Key != st.Key {
			if v.Key != nil {
				log.Debugf("Throwing away %s", *v.Key)
			}
			continue
		}

		// A version older than the newest delete marker belongs to a prior
		// life of the object.
		if v.LastModified != nil && v.LastModified.Before(mostRecentDelete) {
			continue
		}

		if v.VersionId == nil || v.LastModified == nil {
			continue
		}

		kept = append(kept, v)
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].LastModified.After(*kept[j].LastModified)
	})

	// Trim before fetching bodies. Every kept version costs a GetObject on a
	// cold cache.
	if st.Cmd != nil {
		limit := st.Cmd.Int("limit")
		if limit > 0 && len(kept) > limit {
			kept = kept[:limit]
		}
	}

	versions := []*verutil.Version{}
	for _, v := range kept {
		body, err := st.SnapshotBody(*v.VersionId)
		if err != nil {
			log.WithError(err).Error("s3 get object failed")
			continue
		}

		files := 0
		if !snapshot.IsEncrypted(body) {
			files = int(gjson.GetBytes(body, "#").Int())
		}

		var size int64
		if v.Size != nil {
			size = *v.Size
		}

		versions = append(versions, &verutil.Version{
			ID:        *v.VersionId,
			CreatedAt: *v.LastModified,
			Files:     files,
			Size:      size,
			Source:    st.Key,
		})
	}

	return versions, nil
}

func (st *StoreS3) String() string {
	return "s3://" + st.Bucket + "/" + st.Key
}

func (st *StoreS3) Type() string {
	return "s3"
}

func (st *StoreS3) client() (*s3v2.Client, error) {
	var cfgOpts []awsx.Option
	if st.Region != "" {
		cfgOpts = append(cfgOpts, awsx.WithRegion(st.Region))
	}
	if st.Profile != "" {
		cfgOpts = append(cfgOpts, awsx.WithProfile(st.Profile))
	}

	cfg, err := awsx.LoadAWSConfig(st.Ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return awsx.NewS3(cfg), nil
}
