// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/sha256"
	"crypto/tls"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

// load the certificate pair, generating a self-signed one on first
// run when neither file exists yet
func getCertificate(log *logger.L, name string, certificateFileName string, keyFileName string) (*tls.Config, [sha256.Size]byte, error) {

	var fingerprint [sha256.Size]byte

	if !fileExists(certificateFileName) && !fileExists(keyFileName) {
		log.Infof("generate self-signed certificate: %q", certificateFileName)
		err := makeSelfSignedCertificate(name, certificateFileName, keyFileName)
		if nil != err {
			return nil, fingerprint, err
		}
	}

	keyPair, err := tls.LoadX509KeyPair(certificateFileName, keyFileName)
	if nil != err {
		return nil, fingerprint, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	fingerprint = sha256.Sum256(keyPair.Certificate[0])
	log.Infof("%s: SHA-256 fingerprint: %x", name, fingerprint)

	return tlsConfiguration, fingerprint, nil
}

// create a self-signed certificate pair on disk
func makeSelfSignedCertificate(name string, certificateFileName string, keyFileName string) error {

	org := "spvd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, false, nil)
	if nil != err {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); nil != err {
		return err
	}

	if err = ioutil.WriteFile(keyFileName, key, 0600); nil != err {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
